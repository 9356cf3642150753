package launcher

import (
	"os"
	"path/filepath"
	"strings"
)

// Matches reports whether path lies under one of the rule roots and passes
// its include and exclude globs.
func (r Rule) Matches(path string) bool {
	path = filepath.Clean(path)
	for _, root := range r.Paths {
		rel, err := filepath.Rel(filepath.Clean(root), path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
			continue
		}
		if r.Include != "" && !globMatch(r.Include, rel) {
			continue
		}
		if excluded(r.Exclude, rel) {
			continue
		}
		return true
	}
	return false
}

func excluded(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if globMatch(pattern, rel) {
			return true
		}
	}
	return false
}

// globMatch matches patterns with a separator against the relative path and
// the rest against the base name.
func globMatch(pattern, rel string) bool {
	if strings.ContainsRune(pattern, os.PathSeparator) || strings.Contains(pattern, "/") {
		matched, _ := filepath.Match(filepath.FromSlash(pattern), rel)
		return matched
	}
	matched, _ := filepath.Match(pattern, filepath.Base(rel))
	return matched
}
