package patch

import (
	"strings"
	"testing"
)

func TestSplitTwoSections(t *testing.T) {
	payload := `--- a/first.txt
+++ b/first.txt
@@ -1,2 +1,2 @@
 line one
-line two
+line 2
--- a/second.txt
+++ b/second.txt
@@ -1 +1 @@
-old
+new
`

	records := Split(payload)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	if records[0].OldPath != "a/first.txt" || records[0].NewPath != "b/first.txt" {
		t.Errorf("First record paths not correct: %q, %q", records[0].OldPath, records[0].NewPath)
	}
	if records[1].OldPath != "a/second.txt" || records[1].NewPath != "b/second.txt" {
		t.Errorf("Second record paths not correct: %q, %q", records[1].OldPath, records[1].NewPath)
	}
	for i, rec := range records {
		if rec.Body == "" {
			t.Errorf("Record %d has an empty body", i)
		}
	}
}

func TestSplitDropsEmptyBodySection(t *testing.T) {
	payload := `--- a/real.txt
+++ b/real.txt
@@ -1 +1 @@
-a
+b
--- a/empty.txt
+++ b/empty.txt
`

	records := Split(payload)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].OldPath != "a/real.txt" {
		t.Errorf("Expected record for a/real.txt, got %q", records[0].OldPath)
	}
}

func TestSplitRecoversFromOrphanAdditionHeader(t *testing.T) {
	payload := `+++ b/orphan.txt
@@ -1 +1 @@
-x
+y
--- a/good.txt
+++ b/good.txt
@@ -1 +1 @@
-a
+b
`

	records := Split(payload)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record after recovery, got %d", len(records))
	}
	if records[0].OldPath != "a/good.txt" {
		t.Errorf("Expected the good record to survive, got %q", records[0].OldPath)
	}
}

func TestSplitSkipsGitLinesBetweenSections(t *testing.T) {
	payload := "diff --git a/a.txt b/a.txt\nindex 1111111..2222222 100644\n" +
		"--- a/a.txt\n+++ b/a.txt\n@@ -1 +1 @@\n-one\n+ONE\n" +
		"diff --git a/b.txt b/b.txt\nindex 3333333..4444444 100644\n" +
		"--- a/b.txt\n+++ b/b.txt\n@@ -1 +1 @@\n-two\n+TWO\n"

	records := Split(payload)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	for i, rec := range records {
		if strings.Contains(rec.Body, "diff --git") || strings.Contains(rec.Body, "index ") {
			t.Errorf("Record %d body kept git noise lines: %q", i, rec.Body)
		}
	}
}

func TestSplitDropsTerminalEmptyBodyLine(t *testing.T) {
	payload := "--- a/f.txt\n+++ b/f.txt\n@@ -1 +1 @@\n-a\n+b\n"

	records := Split(payload)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if strings.HasSuffix(records[0].Body, "\n") {
		t.Errorf("Body kept the payload's terminal newline as an empty line: %q", records[0].Body)
	}
}

func TestSplitIgnoresLeadingNoise(t *testing.T) {
	payload := "\n\ndiff --git a/f.txt b/f.txt\nindex 123..456 100644\n--- a/f.txt\n+++ b/f.txt\n@@ -1 +1 @@\n-a\n+b\n"

	records := Split(payload)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
}

func TestSplitHeaderPathDropsTimestamp(t *testing.T) {
	payload := "--- a/f.txt\t2024-01-01 00:00:00\n+++ b/f.txt\t2024-01-02 00:00:00\n@@ -1 +1 @@\n-a\n+b\n"

	records := Split(payload)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].OldPath != "a/f.txt" || records[0].NewPath != "b/f.txt" {
		t.Errorf("Timestamps not stripped: %q, %q", records[0].OldPath, records[0].NewPath)
	}
}

func TestFileRecordKind(t *testing.T) {
	cases := []struct {
		old, new string
		want     ActionType
	}{
		{DevNull, "b/new.txt", ActionCreate},
		{"a/old.txt", DevNull, ActionDelete},
		{"a/f.txt", "b/f.txt", ActionModify},
	}

	for _, c := range cases {
		rec := FileRecord{OldPath: c.old, NewPath: c.new}
		if got := rec.Kind(); got != c.want {
			t.Errorf("Kind(%q, %q) = %s, want %s", c.old, c.new, got, c.want)
		}
	}
}

func TestStripSegments(t *testing.T) {
	cases := []struct {
		path   string
		levels int
		want   string
	}{
		{"a/src/main.go", 1, "src/main.go"},
		{"a/b/c.txt", 2, "c.txt"},
		{"nolevels.txt", 1, "nolevels.txt"},
		{DevNull, 1, DevNull},
		{"a/f.txt", 0, "a/f.txt"},
	}

	for _, c := range cases {
		if got := StripSegments(c.path, c.levels); got != c.want {
			t.Errorf("StripSegments(%q, %d) = %q, want %q", c.path, c.levels, got, c.want)
		}
	}
}
