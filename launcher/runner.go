package launcher

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

const (
	EventScan   = "scan"
	EventChange = "change"
)

// RunFunc executes a rule's action for one file.
type RunFunc func(ctx context.Context, rule Rule, path, event string) error

// Runner executes actions as child processes sharing the launcher's stdio.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r Runner) Run(ctx context.Context, rule Rule, path, event string) error {
	cmd := exec.CommandContext(ctx, rule.Action.Command, expandArgs(rule.Action.Args, rule, path, event)...)
	cmd.Env = append(os.Environ(), buildEnv(rule, path, event)...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.WaitDelay = 5 * time.Second
	return cmd.Run()
}

func buildEnv(rule Rule, path, event string) []string {
	pairs := []string{
		"FILE_PATH=" + path,
		"RULE_NAME=" + rule.Name,
		"EVENT_TYPE=" + event,
		"OUTPUT_SUFFIXES=" + strings.Join(rule.Outputs, ","),
	}
	for k, v := range rule.Env {
		pairs = append(pairs, k+"="+expand(v, rule, path, event))
	}
	return pairs
}

func expandArgs(args []string, rule Rule, path, event string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		out = append(out, expand(arg, rule, path, event))
	}
	return out
}

// expand substitutes {path}, {rule}, {event} and {outputs}.
func expand(value string, rule Rule, path, event string) string {
	return strings.NewReplacer(
		"{path}", path,
		"{rule}", rule.Name,
		"{event}", event,
		"{outputs}", strings.Join(rule.Outputs, ","),
	).Replace(value)
}
