package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"

	"github.com/epuerta/repopatch/internal/logging"
)

// Node is one entry in a directory tree. A folder node owns a mapping from
// child name to child node; file nodes carry no children.
type Node struct {
	Type     string           `json:"type"`
	Path     string           `json:"path"`
	Children map[string]*Node `json:"children,omitempty"`
}

// Builder walks directories into Node trees, honoring per-directory ignore
// rule files. Trees are built fresh per request and never cached.
type Builder struct {
	log logging.Logger
}

// NewBuilder creates a tree builder. A nil logger disables logging.
func NewBuilder(log logging.Logger) *Builder {
	if log == nil {
		log = logging.NewNilLogger()
	}
	return &Builder{log: log}
}

// Build walks root's entries recursively and returns the resulting mapping.
// Failing to enumerate root itself is terminal; a failure scoped to one
// subdirectory is logged and that subdirectory is omitted.
func (b *Builder) Build(root string) (map[string]*Node, error) {
	policy, err := PolicyFor(root, nil)
	if err != nil {
		b.log.Log("tree: ignoring unreadable rule file in %s: %v", root, err)
		policy = nil
	}
	return b.walk(root, policy)
}

func (b *Builder) walk(dir string, policy *Policy) (map[string]*Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	kept := entries[:0]
	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())
		if policy.Ignored(entryPath, entry.IsDir()) {
			continue
		}
		kept = append(kept, entry)
	}
	sortEntries(kept)

	nodes := make(map[string]*Node)
	for _, entry := range kept {
		name := entry.Name()
		entryPath := filepath.Join(dir, name)

		if !entry.IsDir() {
			nodes[name] = &Node{Type: "file", Path: entryPath}
			continue
		}

		childPolicy, err := PolicyFor(entryPath, policy)
		if err != nil {
			b.log.Log("tree: ignoring unreadable rule file in %s: %v", entryPath, err)
			childPolicy = policy
		}

		children, err := b.walk(entryPath, childPolicy)
		if err != nil {
			b.log.Log("tree: skipping directory %s: %v", entryPath, err)
			continue
		}

		// Folders that are empty after filtering are omitted entirely.
		if len(children) > 0 {
			nodes[name] = &Node{Type: "folder", Path: entryPath, Children: children}
		}
	}

	return nodes, nil
}

// sortEntries orders siblings: directories before files, then natural
// (numeric-aware) name order, so "file2" sorts before "file10".
func sortEntries(entries []os.DirEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return natural.Less(entries[i].Name(), entries[j].Name())
	})
}
