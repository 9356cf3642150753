package generator

import (
	"fmt"
	"strings"
)

// ParseLabels splits a comma separated --outputs value. Blank entries are
// dropped; duplicates are kept as given.
func ParseLabels(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// ValidateLabel rejects labels that would escape the input or template directory.
func ValidateLabel(label string) error {
	if strings.ContainsAny(label, `/\`) || strings.Contains(label, "..") {
		return fmt.Errorf("invalid output label %q", label)
	}
	return nil
}
