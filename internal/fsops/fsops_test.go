package fsops

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hi"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	resolved, err := ResolveFile(path)
	if err != nil {
		t.Fatalf("ResolveFile failed: %v", err)
	}
	if resolved == "" {
		t.Error("Expected a resolved path")
	}

	if _, err := ResolveFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("Expected an error for a missing file")
	}
	if _, err := ResolveFile(dir); err == nil {
		t.Error("Expected an error when the path is a directory")
	}
}

func TestResolveDir(t *testing.T) {
	dir := t.TempDir()

	if _, err := ResolveDir(dir); err != nil {
		t.Fatalf("ResolveDir failed: %v", err)
	}

	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if _, err := ResolveDir(file); err == nil {
		t.Error("Expected an error when the path is a file")
	}
	if _, err := ResolveDir(""); err == nil {
		t.Error("Expected an error for the empty path")
	}
}

func TestCheckWritable(t *testing.T) {
	dir := t.TempDir()

	ok, err := CheckWritable(dir)
	if !ok {
		t.Fatalf("Expected temp dir to be writable, got: %v", err)
	}

	// No probe file should be left behind.
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("Failed to list dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("Probe file left behind: %v", entries)
	}
}

func TestReadBatchMixedResults(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(existing, []byte("content of a"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	missing := filepath.Join(dir, "missing.txt")

	results, err := ReadBatch(context.Background(), []string{existing, missing})
	if err != nil {
		t.Fatalf("ReadBatch failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	got, ok := results[existing]
	if !ok {
		t.Fatalf("Result not keyed by the original path string: %v", results)
	}
	if !got.Success || got.Content == nil || *got.Content != "content of a" {
		t.Errorf("Existing file result not correct: %+v", got)
	}

	bad, ok := results[missing]
	if !ok {
		t.Fatalf("Missing path absent from results: %v", results)
	}
	if bad.Success || bad.Error == nil {
		t.Errorf("Missing file should fail per-path: %+v", bad)
	}
}

func TestReadBatchRejectsEmptyInput(t *testing.T) {
	if _, err := ReadBatch(context.Background(), nil); err == nil {
		t.Fatal("Expected an error for an empty path list")
	}
}

func TestReadBatchManyFiles(t *testing.T) {
	dir := t.TempDir()

	paths := make([]string, 0, 120)
	for i := 0; i < 120; i++ {
		p := filepath.Join(dir, "f"+string(rune('a'+i%26))+".txt")
		paths = append(paths, p)
	}
	// Only create half of them; the rest fail per-path.
	for i, p := range paths {
		if i%2 == 0 {
			if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
				t.Fatalf("Failed to write fixture: %v", err)
			}
		}
	}

	results, err := ReadBatch(context.Background(), paths)
	if err != nil {
		t.Fatalf("ReadBatch failed: %v", err)
	}

	// Duplicate input paths collapse into one keyed entry each.
	if len(results) != 26 {
		t.Fatalf("Expected 26 distinct keys, got %d", len(results))
	}
}
