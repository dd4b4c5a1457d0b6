package tree

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// RuleFileName is the per-directory ignore rule file consulted during walks.
const RuleFileName = ".gitignore"

// Policy wraps a compiled gitignore rule set rooted at the directory that
// owns the rule file. A directory that defines its own rule file uses only
// that file's rules; a directory without one inherits the nearest ancestor's
// policy unchanged (rules never merge across levels).
type Policy struct {
	matcher *gitignore.GitIgnore
	base    string
}

// PolicyFor returns the policy in effect when entering dir: the directory's
// own compiled rule file when present, otherwise the parent policy. A rule
// file that exists but fails to compile is reported so the caller can log it
// and fall back to parent.
func PolicyFor(dir string, parent *Policy) (*Policy, error) {
	ruleFile := filepath.Join(dir, RuleFileName)
	if _, err := os.Stat(ruleFile); err != nil {
		return parent, nil
	}

	matcher, err := gitignore.CompileIgnoreFile(ruleFile)
	if err != nil {
		return parent, err
	}

	return &Policy{matcher: matcher, base: dir}, nil
}

// Ignored reports whether the entry at absPath is hidden by the policy.
// Directory entries are matched with a trailing slash so directory-only
// patterns (those ending in "/") behave as they do under git. Matching is
// relative to the directory owning the rule file.
func (p *Policy) Ignored(absPath string, isDir bool) bool {
	if p == nil || p.matcher == nil {
		return false
	}

	rel, err := filepath.Rel(p.base, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}

	rel = filepath.ToSlash(rel)
	if isDir {
		rel += "/"
	}

	return p.matcher.MatchesPath(rel)
}
