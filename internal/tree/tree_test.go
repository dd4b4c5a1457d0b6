package tree

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func mkFile(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directories for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte("content\n"), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestBuildBasicTree(t *testing.T) {
	root := t.TempDir()
	mkFile(t, root, "top.txt")
	mkFile(t, root, "sub/inner.txt")

	nodes, err := NewBuilder(nil).Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	file, ok := nodes["top.txt"]
	if !ok || file.Type != "file" {
		t.Fatalf("Expected a file node for top.txt, got %+v", file)
	}

	folder, ok := nodes["sub"]
	if !ok || folder.Type != "folder" {
		t.Fatalf("Expected a folder node for sub, got %+v", folder)
	}
	if _, ok := folder.Children["inner.txt"]; !ok {
		t.Errorf("Expected sub to contain inner.txt, got %v", folder.Children)
	}
}

func TestBuildSkipsIgnoredEntries(t *testing.T) {
	root := t.TempDir()
	mkFile(t, root, "kept.txt")
	mkFile(t, root, "secret.log")
	mkFile(t, root, "node_modules/dep/index.js")
	if err := os.WriteFile(filepath.Join(root, RuleFileName), []byte("*.log\nnode_modules/\n"), 0644); err != nil {
		t.Fatalf("Failed to write rule file: %v", err)
	}

	nodes, err := NewBuilder(nil).Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, ok := nodes["secret.log"]; ok {
		t.Error("Ignored file surfaced in tree")
	}
	if _, ok := nodes["node_modules"]; ok {
		t.Error("Ignored directory surfaced in tree")
	}
	if _, ok := nodes["kept.txt"]; !ok {
		t.Error("Non-ignored file missing from tree")
	}
}

func TestBuildOmitsFoldersEmptyAfterFiltering(t *testing.T) {
	root := t.TempDir()
	mkFile(t, root, "visible.txt")
	mkFile(t, root, "logs/only.log")
	if err := os.WriteFile(filepath.Join(root, RuleFileName), []byte("*.log\n"), 0644); err != nil {
		t.Fatalf("Failed to write rule file: %v", err)
	}

	nodes, err := NewBuilder(nil).Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, ok := nodes["logs"]; ok {
		t.Error("Folder with only ignored content should be omitted")
	}
}

func TestOwnRuleFileReplacesAncestorRules(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, RuleFileName), []byte("*.tmp\n"), 0644); err != nil {
		t.Fatalf("Failed to write root rule file: %v", err)
	}
	mkFile(t, root, "root.tmp")
	mkFile(t, root, "sub/child.tmp")
	mkFile(t, root, "sub/other.md")
	// The subdirectory's own rule file ignores markdown instead; the
	// ancestor's *.tmp rule must not leak in.
	if err := os.WriteFile(filepath.Join(root, "sub", RuleFileName), []byte("*.md\n"), 0644); err != nil {
		t.Fatalf("Failed to write sub rule file: %v", err)
	}

	nodes, err := NewBuilder(nil).Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, ok := nodes["root.tmp"]; ok {
		t.Error("root.tmp should be ignored by the root rules")
	}

	sub, ok := nodes["sub"]
	if !ok {
		t.Fatalf("Expected sub folder, got %v", nodes)
	}
	if _, ok := sub.Children["child.tmp"]; !ok {
		t.Error("child.tmp should survive: the subdirectory's own rules replace the ancestor's")
	}
	if _, ok := sub.Children["other.md"]; ok {
		t.Error("other.md should be ignored by the subdirectory's own rules")
	}
}

type fakeEntry struct {
	name string
	dir  bool
}

func (f fakeEntry) Name() string               { return f.name }
func (f fakeEntry) IsDir() bool                { return f.dir }
func (f fakeEntry) Type() fs.FileMode          { return 0 }
func (f fakeEntry) Info() (fs.FileInfo, error) { return nil, nil }

func TestSortEntriesDirectoriesFirstThenNatural(t *testing.T) {
	entries := []os.DirEntry{
		fakeEntry{name: "file10", dir: false},
		fakeEntry{name: "zdir", dir: true},
		fakeEntry{name: "file2", dir: false},
		fakeEntry{name: "adir", dir: true},
		fakeEntry{name: "b", dir: false},
		fakeEntry{name: "a", dir: false},
	}

	sortEntries(entries)

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Name()
	}

	want := []string{"adir", "zdir", "a", "b", "file2", "file10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Order not correct: got %v, want %v", got, want)
		}
	}
}
