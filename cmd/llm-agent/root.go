package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"auto_content_publisher/cli"
	"auto_content_publisher/config"
	"auto_content_publisher/document"
	"auto_content_publisher/generator"
)

const (
	defaultModel       = "gpt-4o"
	defaultTemperature = 0.7
	promptsDir         = "prompts"
)

type options struct {
	input        string
	outputs      string
	model        string
	temperature  float64
	systemPrompt string
	provider     string
	root         string
	configFile   string
	verbose      bool
}

type newLLMFunc func(generator.LLMSettings) (generator.LLMClient, error)

func newRootCmd(load cli.LoadFunc, newLLM newLLMFunc) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "llm-agent",
		Short: "Generate per-format variants of a document with an LLM",
		Long: `llm-agent reads --input, removes the publish marker, and for every label in
--outputs asks the model to rewrite the text using prompts/<label>.txt
(or a generic instruction when that template does not exist). Each reply is
written to <stem>.<label><ext> beside the input. A failing label is reported
and the remaining labels still run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, load, newLLM, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.input, "input", "", "input file path")
	f.StringVar(&opts.outputs, "outputs", "", "comma-separated list of output labels (e.g. medium,x)")
	f.StringVar(&opts.model, "model", defaultModel, "chat model to use")
	f.Float64Var(&opts.temperature, "temperature", defaultTemperature, "sampling temperature")
	f.StringVar(&opts.systemPrompt, "system-prompt", generator.DefaultSystemPromptArg, "path to system prompt file or 'default'")
	f.StringVar(&opts.provider, "provider", "openai", "llm provider: openai, deepseek or mock")
	f.StringVar(&opts.root, "root", "", "install root for prompts/ and relative system prompt paths (default: executable directory)")
	f.StringVar(&opts.configFile, "config", "", "config file (default: ./config.yaml)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logs")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("outputs")
	return cmd
}

func run(cmd *cobra.Command, load cli.LoadFunc, newLLM newLLMFunc, opts options) error {
	root := opts.root
	if root == "" {
		root = cli.InstallRoot()
	}
	cfg, err := load(config.Options{ConfigFile: opts.configFile, RootDir: root})
	if err != nil {
		return err
	}
	if opts.root == "" && cfg.RootDir != "" {
		root = cfg.RootDir
	}
	logger := cli.NewLogger(cmd.ErrOrStderr(), cfg, opts.verbose, "llm-agent")

	doc, err := document.Load(opts.input)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return fmt.Errorf("Input file '%s' not found.", opts.input)
		}
		return fmt.Errorf("reading input file: %w", err)
	}
	content := document.StripMarker(doc.Text)

	systemPrompt := generator.ResolveSystemPrompt(opts.systemPrompt, root, logger)

	if opts.provider != "mock" {
		if err := cfg.RequireOpenAI(); err != nil {
			return err
		}
	}
	llm, err := newLLM(generator.LLMSettings{
		Provider:    opts.provider,
		Model:       opts.model,
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Temperature: opts.temperature,
	})
	if err != nil {
		return err
	}

	templates := generator.DirTemplates{Dir: filepath.Join(root, promptsDir), Logger: logger}
	agent, err := generator.NewAgent(llm, templates, logger)
	if err != nil {
		return err
	}

	labels := generator.ParseLabels(opts.outputs)
	logger.Info("generating outputs",
		"input", doc.Path,
		"labels", labels,
		"model", opts.model,
		"temperature", opts.temperature,
		"api_key", config.MaskSecret(cfg.OpenAI.APIKey))

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	results := agent.Generate(cmd.Context(), generator.Job{
		InputPath:    doc.Path,
		Content:      content,
		SystemPrompt: systemPrompt,
		Labels:       labels,
		OnStart: func(label string) {
			fmt.Fprintf(stdout, "Processing output: %s with model %s, temp %v...\n", label, opts.model, opts.temperature)
		},
		OnResult: func(r generator.LabelResult) {
			if r.Err != nil {
				fmt.Fprintf(stderr, "Error generating content for %s: %v\n", r.Label, r.Err)
				return
			}
			fmt.Fprintf(stdout, "Generated: %s (took %.2fs)\n", r.OutputPath, r.Duration.Seconds())
		},
	})

	// Per-label failures never change the exit status.
	if failed := generator.Failed(results); failed > 0 {
		logger.Warn("some outputs failed", "failed", failed, "total", len(results))
	}
	return nil
}
