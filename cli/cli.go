// Package cli holds the plumbing shared by the command line entry points.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"auto_content_publisher/config"
	"auto_content_publisher/logging"
)

// ErrReported is returned by a command that already printed its failure.
// Main exits non-zero without printing it again.
var ErrReported = errors.New("error already reported")

// LoadFunc loads configuration. Commands take it as a parameter so tests can
// supply credentials without touching the process environment.
type LoadFunc func(config.Options) (*config.Config, error)

// Main runs cmd with a context cancelled on SIGINT/SIGTERM and exits 1 on error.
func Main(cmd *cobra.Command) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		if !errors.Is(err, ErrReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// InstallRoot is the directory holding the running executable; prompt
// templates and .env files are looked up relative to it.
func InstallRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// NewLogger builds the invocation logger on w from the loaded config.
func NewLogger(w io.Writer, cfg *config.Config, verbose bool, tool string) *slog.Logger {
	return logging.WithRun(logging.New(w, logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Verbose: verbose,
	}), tool)
}
