package launcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRules = `
version: 1
rules:
  - name: generate
    paths: [notes]
    include: "*.md"
    exclude: ["*.medium.md", "*.x.md", "drafts/*"]
    outputs: [medium, x]
    action:
      command: llm-agent
      args: ["--input", "{path}", "--outputs", "{outputs}"]
    env:
      RULE_TAG: "{rule}-{event}"
`

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]byte(sampleRules))
	require.NoError(t, err)
	require.Len(t, rules.Rules, 1)

	rule := rules.Rules[0]
	assert.Equal(t, "generate", rule.Name)
	assert.Equal(t, []string{"notes"}, rule.Paths)
	assert.Equal(t, []string{"medium", "x"}, rule.Outputs)
	assert.Equal(t, "llm-agent", rule.Action.Command)
	assert.Equal(t, "{rule}-{event}", rule.Env["RULE_TAG"])
}

func TestParseRulesValidation(t *testing.T) {
	cases := map[string]string{
		"no rules":   "version: 1\n",
		"no name":    "rules:\n  - paths: [a]\n    action: {command: x}\n",
		"no paths":   "rules:\n  - name: r\n    action: {command: x}\n",
		"no command": "rules:\n  - name: r\n    paths: [a]\n",
		"bad yaml":   "rules: [\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRules([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestRuleMatches(t *testing.T) {
	rules, err := ParseRules([]byte(sampleRules))
	require.NoError(t, err)
	rule := rules.Rules[0]

	assert.True(t, rule.Matches(filepath.Join("notes", "idea.md")))
	assert.True(t, rule.Matches(filepath.Join("notes", "sub", "idea.md")))
	assert.False(t, rule.Matches(filepath.Join("notes", "idea.medium.md")))
	assert.False(t, rule.Matches(filepath.Join("notes", "idea.txt")))
	assert.False(t, rule.Matches(filepath.Join("notes", "drafts", "wip.md")))
	assert.False(t, rule.Matches(filepath.Join("other", "idea.md")))
	assert.False(t, rule.Matches(filepath.Join("notes-archive", "idea.md")))
}

func TestExpandAndEnv(t *testing.T) {
	rule := Rule{Name: "publish", Outputs: []string{"medium", "x"}, Env: map[string]string{"TAG": "{rule}:{path}"}}

	args := expandArgs([]string{"--input", "{path}", "--outputs", "{outputs}", "{event}"}, rule, "a.md", EventScan)
	assert.Equal(t, []string{"--input", "a.md", "--outputs", "medium,x", "scan"}, args)

	env := buildEnv(rule, "a.md", EventChange)
	assert.Contains(t, env, "FILE_PATH=a.md")
	assert.Contains(t, env, "RULE_NAME=publish")
	assert.Contains(t, env, "EVENT_TYPE=change")
	assert.Contains(t, env, "OUTPUT_SUFFIXES=medium,x")
	assert.Contains(t, env, "TAG=publish:a.md")
}

type call struct {
	rule, path, event string
}

func TestScanRunsEveryMatchAndContinuesOnFailure(t *testing.T) {
	root := t.TempDir()
	notes := filepath.Join(root, "notes")
	require.NoError(t, os.MkdirAll(filepath.Join(notes, "sub"), 0o755))
	for _, name := range []string{"a.md", "b.md", "a.medium.md", "skip.txt", filepath.Join("sub", "c.md")} {
		require.NoError(t, os.WriteFile(filepath.Join(notes, name), []byte("x"), 0o644))
	}

	rules := &Rules{Rules: []Rule{{
		Name:    "generate",
		Paths:   []string{notes},
		Include: "*.md",
		Exclude: []string{"*.medium.md"},
		Action:  Action{Command: "unused"},
	}}}

	var calls []call
	run := func(_ context.Context, rule Rule, path, event string) error {
		calls = append(calls, call{rule.Name, path, event})
		if filepath.Base(path) == "a.md" {
			return errors.New("exit status 1")
		}
		return nil
	}
	l, err := New(rules, run, nil)
	require.NoError(t, err)

	ran, err := l.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ran)

	var paths []string
	for _, c := range calls {
		assert.Equal(t, EventScan, c.event)
		paths = append(paths, c.path)
	}
	sort.Strings(paths)
	assert.Equal(t, []string{
		filepath.Join(notes, "a.md"),
		filepath.Join(notes, "b.md"),
		filepath.Join(notes, "sub", "c.md"),
	}, paths)
}

func TestScanStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("x"), 0o644))
	l, err := New(&Rules{Rules: []Rule{{Name: "r", Paths: []string{dir}, Action: Action{Command: "x"}}}},
		func(context.Context, Rule, string, string) error { return nil }, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatchRunsOnWrite(t *testing.T) {
	dir := t.TempDir()
	rules := &Rules{Rules: []Rule{{Name: "watch", Paths: []string{dir}, Include: "*.md", Action: Action{Command: "x"}}}}

	got := make(chan call, 16)
	l, err := New(rules, func(_ context.Context, rule Rule, path, event string) error {
		got <- call{rule.Name, path, event}
		return nil
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Watch(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	target := filepath.Join(dir, "note.md")
	ignored := filepath.Join(dir, "note.txt")
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for i := 0; ; i++ {
		select {
		case c := <-got:
			assert.Equal(t, "watch", c.rule)
			assert.Equal(t, target, c.path)
			assert.Equal(t, EventChange, c.event)
			return
		case <-tick.C:
			// The watcher may not be registered yet; keep touching the file.
			require.NoError(t, os.WriteFile(ignored, []byte(fmt.Sprint(i)), 0o644))
			require.NoError(t, os.WriteFile(target, []byte(fmt.Sprint(i)), 0o644))
		case <-deadline:
			t.Fatal("no action run for written file")
		}
	}
}

func TestRemovedFileForgetsLastRun(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0o644))
	rules := &Rules{Rules: []Rule{
		{Name: "a", Paths: []string{dir}, Include: "*.md", Action: Action{Command: "x"}},
		{Name: "b", Paths: []string{dir}, Include: "*.md", Action: Action{Command: "x"}},
	}}

	runs := 0
	l, err := New(rules, func(context.Context, Rule, string, string) error {
		runs++
		return nil
	}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	l.handle(ctx, nil, fsnotify.Event{Name: target, Op: fsnotify.Write})
	assert.Equal(t, 2, runs)
	assert.Len(t, l.lastRun, 2)

	// Unchanged mtime: no new runs.
	l.handle(ctx, nil, fsnotify.Event{Name: target, Op: fsnotify.Write})
	assert.Equal(t, 2, runs)

	require.NoError(t, os.Remove(target))
	l.handle(ctx, nil, fsnotify.Event{Name: target, Op: fsnotify.Remove})
	assert.Empty(t, l.lastRun)

	require.NoError(t, os.WriteFile(target, []byte("v1"), 0o644))
	l.handle(ctx, nil, fsnotify.Event{Name: target, Op: fsnotify.Rename})
	assert.Empty(t, l.lastRun)
	assert.Equal(t, 2, runs)
}

func TestRunnerRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	var stdout bytes.Buffer
	rule := Rule{
		Name:    "echo",
		Outputs: []string{"medium"},
		Action:  Action{Command: "sh", Args: []string{"-c", `echo "$FILE_PATH $OUTPUT_SUFFIXES $1"`, "sh", "{rule}"}},
	}
	err := Runner{Stdout: &stdout, Stderr: &stdout}.Run(context.Background(), rule, "n.md", EventScan)
	require.NoError(t, err)
	assert.Equal(t, "n.md medium echo", strings.TrimSpace(stdout.String()))

	rule.Action.Args = []string{"-c", "exit 3"}
	assert.Error(t, Runner{Stdout: &stdout, Stderr: &stdout}.Run(context.Background(), rule, "n.md", EventScan))
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, func(context.Context, Rule, string, string) error { return nil }, nil)
	assert.Error(t, err)
	_, err = New(&Rules{Rules: []Rule{{Name: "r"}}}, nil, nil)
	assert.Error(t, err)
}
