package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto_content_publisher/config"
)

func TestRunExecutesActions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes")
	require.NoError(t, os.MkdirAll(notes, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(notes, "idea.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(notes, "idea.x.md"), []byte("x"), 0o644))

	rules := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte(`
rules:
  - name: echo
    paths: [`+notes+`]
    include: "*.md"
    exclude: ["*.x.md"]
    outputs: [x]
    action:
      command: sh
      args: ["-c", "echo ran $RULE_NAME $OUTPUT_SUFFIXES", "sh"]
`), 0o644))

	cmd := newRootCmd(func(config.Options) (*config.Config, error) { return &config.Config{}, nil })
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"run", "--rules", rules})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "ran echo x\n", stdout.String())
}

func TestRunMissingRules(t *testing.T) {
	cmd := newRootCmd(func(config.Options) (*config.Config, error) { return &config.Config{}, nil })
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--rules", filepath.Join(t.TempDir(), "missing.yaml")})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load rules")
}
