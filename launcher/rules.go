// Package launcher runs action commands for files that match configured rules.
package launcher

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules is the launcher rule file.
type Rules struct {
	Version int    `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Rule binds a set of paths and glob filters to an action.
type Rule struct {
	Name    string            `yaml:"name"`
	Paths   []string          `yaml:"paths"`
	Include string            `yaml:"include"`
	Exclude []string          `yaml:"exclude"`
	Outputs []string          `yaml:"outputs"`
	Action  Action            `yaml:"action"`
	Env     map[string]string `yaml:"env"`
}

type Action struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// LoadRules reads and validates a YAML rule file.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRules(data)
}

func ParseRules(data []byte) (*Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	if err := rules.validate(); err != nil {
		return nil, err
	}
	return &rules, nil
}

func (r *Rules) validate() error {
	if len(r.Rules) == 0 {
		return errors.New("rules: at least one rule is required")
	}
	for i, rule := range r.Rules {
		if rule.Name == "" {
			return fmt.Errorf("rules[%d]: name is required", i)
		}
		if len(rule.Paths) == 0 {
			return fmt.Errorf("rule %s: paths are required", rule.Name)
		}
		if rule.Action.Command == "" {
			return fmt.Errorf("rule %s: action command is required", rule.Name)
		}
	}
	return nil
}
