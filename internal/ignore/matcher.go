package ignore

import (
	"path"
	"path/filepath"
	"strings"
)

// Matcher decides which paths a source walk should skip. Rules are glob
// patterns matched against the relative path and against its segments; a
// trailing slash restricts a rule to directories.
type Matcher struct {
	rules []rule
}

type rule struct {
	pattern string
	dirOnly bool
}

// defaultRules cover directories that never hold declarations worth naming:
// VCS metadata, dependency caches, build output, test fixtures.
var defaultRules = []string{
	".git/",
	"vendor/",
	"node_modules/",
	"testdata/",
	"dist/",
	"build/",
	"target/",
}

// NewMatcher builds a matcher from the defaults plus user-provided patterns.
func NewMatcher(userRules []string) *Matcher {
	all := make([]string, 0, len(defaultRules)+len(userRules))
	all = append(all, defaultRules...)
	all = append(all, userRules...)

	m := &Matcher{rules: make([]rule, 0, len(all))}
	for _, line := range all {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r := rule{pattern: line}
		if strings.HasSuffix(line, "/") {
			r.dirOnly = true
			r.pattern = strings.TrimSuffix(line, "/")
		}
		r.pattern = strings.TrimPrefix(filepath.ToSlash(r.pattern), "./")
		if r.pattern != "" {
			m.rules = append(m.rules, r)
		}
	}
	return m
}

// ShouldIgnore reports whether relPath should be excluded from the walk.
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	relPath = strings.TrimPrefix(filepath.ToSlash(relPath), "./")
	segments := strings.Split(relPath, "/")
	base := segments[len(segments)-1]

	for _, r := range m.rules {
		// A rule matching any parent directory hides everything beneath it.
		for i, segment := range segments[:len(segments)-1] {
			if globMatch(r.pattern, segment) || globMatch(r.pattern, strings.Join(segments[:i+1], "/")) {
				return true
			}
		}
		if r.dirOnly && !isDir {
			continue
		}
		if globMatch(r.pattern, base) || globMatch(r.pattern, relPath) {
			return true
		}
	}
	return false
}

func globMatch(pattern, value string) bool {
	ok, err := path.Match(pattern, value)
	return err == nil && ok
}
