package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"auto_content_publisher/cli"
	"auto_content_publisher/config"
	"auto_content_publisher/document"
	"auto_content_publisher/publisher"
)

func newRootCmd(load cli.LoadFunc) *cobra.Command {
	var (
		input      string
		configFile string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:           "x-publisher",
		Short:         "Post a marked document excerpt to X",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(config.Options{ConfigFile: configFile, RootDir: cli.InstallRoot()})
			if err != nil {
				return err
			}
			logger := cli.NewLogger(cmd.ErrOrStderr(), cfg, verbose, "x-publisher")

			doc, err := document.Load(input)
			if err != nil {
				if errors.Is(err, document.ErrNotFound) {
					return fmt.Errorf("Input file '%s' not found.", input)
				}
				return fmt.Errorf("reading input file: %w", err)
			}

			gate := publisher.Gate{
				OnMarker: func(doc document.Document) {
					fmt.Fprintf(cmd.OutOrStdout(), "Marker found in %s. Initiating X publish...\n", doc.Path)
				},
				NewTarget: func() (publisher.Target, error) {
					if err := cfg.RequireX(); err != nil {
						return nil, err
					}
					return publisher.NewX(cfg.X, nil, logger)
				},
			}
			return cli.ReportPublish(cmd, logger, publisher.XName, gate.Publish(cmd.Context(), doc))
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "input file path")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default: ./config.yaml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
