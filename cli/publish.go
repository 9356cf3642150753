package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"auto_content_publisher/config"
	"auto_content_publisher/publisher"
)

// ReportPublish prints the outcome of a gated publish the way both publisher
// commands do and converts it to the command's error.
func ReportPublish(cmd *cobra.Command, logger *slog.Logger, service string, res publisher.Result) error {
	switch res.Status {
	case publisher.StatusSkipped:
		logger.Debug("publish marker not found, skipping")
		return nil
	case publisher.StatusSucceeded:
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully published to %s: %s\n", service, res.Output)
		return nil
	}

	var missing *config.MissingCredentialsError
	if errors.As(res.Err, &missing) {
		return res.Err
	}
	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "Failed to publish to %s: %v\n", service, res.Err)
	var apiErr *publisher.APIError
	if errors.As(res.Err, &apiErr) && apiErr.Body != "" {
		fmt.Fprintf(stderr, "Response: %s\n", apiErr.Body)
	}
	logger.Error("publish failed", "service", service, "err", res.Err)
	return ErrReported
}
