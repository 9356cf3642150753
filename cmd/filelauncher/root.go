package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"auto_content_publisher/cli"
	"auto_content_publisher/config"
	"auto_content_publisher/launcher"
)

type globals struct {
	rulesFile  string
	configFile string
	verbose    bool
}

func newRootCmd(load cli.LoadFunc) *cobra.Command {
	var g globals
	root := &cobra.Command{
		Use:   "filelauncher",
		Short: "Run actions for files matching launcher rules",
		Long: `filelauncher reads a rule file and runs each rule's action command for the
files under its paths that pass the include/exclude globs. The file path,
rule name, event and output labels reach the action through {path}, {rule},
{event} and {outputs} placeholders and the FILE_PATH, RULE_NAME, EVENT_TYPE
and OUTPUT_SUFFIXES environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.rulesFile, "rules", "rules.yaml", "launcher rule file")
	root.PersistentFlags().StringVar(&g.configFile, "config", "", "config file (default: ./config.yaml)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logs")

	root.AddCommand(runCmd(load, &g), watchCmd(load, &g))
	return root
}

func runCmd(load cli.LoadFunc, g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Walk every rule path once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, logger, err := setup(cmd, load, g)
			if err != nil {
				return err
			}
			ran, err := l.Scan(cmd.Context())
			logger.Info("scan finished", "actions", ran)
			return err
		},
	}
}

func watchCmd(load cli.LoadFunc, g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run rules as files are created or modified",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, _, err := setup(cmd, load, g)
			if err != nil {
				return err
			}
			return l.Watch(cmd.Context())
		},
	}
}

func setup(cmd *cobra.Command, load cli.LoadFunc, g *globals) (*launcher.Launcher, *slog.Logger, error) {
	cfg, err := load(config.Options{ConfigFile: g.configFile, RootDir: cli.InstallRoot()})
	if err != nil {
		return nil, nil, err
	}
	logger := cli.NewLogger(cmd.ErrOrStderr(), cfg, g.verbose, "filelauncher")

	rules, err := launcher.LoadRules(g.rulesFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rules: %w", err)
	}
	runner := launcher.Runner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	l, err := launcher.New(rules, runner.Run, logger)
	if err != nil {
		return nil, nil, err
	}
	return l, logger, nil
}
