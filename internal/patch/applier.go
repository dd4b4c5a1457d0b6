package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/epuerta/repopatch/internal/fsops"
	"github.com/epuerta/repopatch/internal/logging"
)

// Applier applies split patch records against a base directory. Records are
// processed sequentially and independently: one failing record never blocks
// the ones after it, and nothing already written is rolled back.
type Applier struct {
	baseDir string
	log     logging.Logger
}

// NewApplier creates an applier rooted at baseDir, which must already be a
// resolved, existing directory.
func NewApplier(baseDir string, log logging.Logger) *Applier {
	if log == nil {
		log = logging.NewNilLogger()
	}
	return &Applier{baseDir: baseDir, log: log}
}

// Apply splits the payload and applies every record, accumulating per-record
// results into the returned Outcome. The only request-aborting condition
// here is an empty payload; everything past that point is converted into a
// detail entry on the record it belongs to.
func (a *Applier) Apply(payload string) (*Outcome, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, &DiffError{Message: "patch content cannot be empty"}
	}

	outcome := &Outcome{}
	records := Split(payload)
	a.log.Log("apply: %d record(s) in payload, base dir %s", len(records), a.baseDir)

	if len(records) == 0 {
		outcome.Details = append(outcome.Details, "no file sections found in patch content")
		return outcome, nil
	}

	for _, rec := range records {
		a.applyRecord(rec, outcome)
	}

	return outcome, nil
}

// applyRecord handles a single record. All failure modes append a detail
// entry; only a successful on-disk write appends to the applied list.
func (a *Applier) applyRecord(rec FileRecord, outcome *Outcome) {
	oldPath := StripSegments(rec.OldPath, 1)
	newPath := StripSegments(rec.NewPath, 1)

	// The operative path is the old side unless this is a creation.
	relPath := oldPath
	if relPath == DevNull {
		relPath = newPath
	}

	target, err := a.resolveTarget(relPath)
	if err != nil {
		outcome.Details = append(outcome.Details, err.Error())
		return
	}

	switch rec.Kind() {
	case ActionCreate:
		a.applyCreate(rec, relPath, target, outcome)
	case ActionDelete:
		a.applyDelete(relPath, target, outcome)
	default:
		a.applyModify(rec, relPath, target, outcome)
	}
}

// resolveTarget joins a record's relative path to the base directory,
// rejecting anything that escapes it.
func (a *Applier) resolveTarget(relPath string) (string, error) {
	if relPath == "" || relPath == DevNull {
		return "", fmt.Errorf("record has no usable target path")
	}

	target := filepath.Join(a.baseDir, filepath.FromSlash(relPath))
	if target != a.baseDir && !strings.HasPrefix(target, a.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q resolves outside the base directory", relPath)
	}

	return target, nil
}

func (a *Applier) applyCreate(rec FileRecord, relPath, target string, outcome *Outcome) {
	if fsops.Exists(target) {
		outcome.Details = append(outcome.Details, fmt.Sprintf("file to create already exists: %s", relPath))
		return
	}

	hunks, err := ParseHunks(rec.Body)
	if err != nil {
		outcome.Details = append(outcome.Details, fmt.Sprintf("failed to parse patch for new file %s: %v", relPath, err))
		return
	}

	content, applied, _ := ApplyHunks("", hunks)
	if !allApplied(applied) {
		outcome.Details = append(outcome.Details, fmt.Sprintf("patch for new file %s only partially applies (%s)", relPath, appliedSummary(applied)))
		return
	}

	if err := fsops.WriteFileString(target, content); err != nil {
		outcome.Details = append(outcome.Details, fmt.Sprintf("failed to write new file %s: %v", relPath, err))
		return
	}

	a.log.Log("apply: created %s", relPath)
	outcome.Applied = append(outcome.Applied, relPath)
}

func (a *Applier) applyDelete(relPath, target string, outcome *Outcome) {
	if _, err := os.Stat(target); err != nil {
		outcome.Details = append(outcome.Details, fmt.Sprintf("file to delete does not exist: %s", relPath))
		return
	}

	if err := os.Remove(target); err != nil {
		outcome.Details = append(outcome.Details, fmt.Sprintf("failed to delete %s: %v", relPath, err))
		return
	}

	a.log.Log("apply: deleted %s", relPath)
	outcome.Applied = append(outcome.Applied, relPath)
}

func (a *Applier) applyModify(rec FileRecord, relPath, target string, outcome *Outcome) {
	info, err := os.Stat(target)
	if err != nil {
		outcome.Details = append(outcome.Details, fmt.Sprintf("file to modify does not exist: %s", relPath))
		return
	}
	if info.IsDir() {
		outcome.Details = append(outcome.Details, fmt.Sprintf("target of modification is a directory: %s", relPath))
		return
	}

	data, err := os.ReadFile(target)
	if err != nil {
		outcome.Details = append(outcome.Details, fmt.Sprintf("failed to read %s: %v", relPath, err))
		return
	}

	hunks, err := ParseHunks(rec.Body)
	if err != nil {
		outcome.Details = append(outcome.Details, fmt.Sprintf("failed to parse patch for %s: %v", relPath, err))
		return
	}

	content, applied, fuzz := ApplyHunks(string(data), hunks)
	if !allApplied(applied) {
		// Partial application is a full failure for this file: the on-disk
		// bytes stay untouched.
		outcome.Details = append(outcome.Details, fmt.Sprintf("patch for %s only partially applies (%s); file left unmodified", relPath, appliedSummary(applied)))
		return
	}
	if fuzz > 0 {
		a.log.Log("apply: %s matched with fuzz %d", relPath, fuzz)
	}

	if err := os.WriteFile(target, []byte(content), info.Mode().Perm()); err != nil {
		outcome.Details = append(outcome.Details, fmt.Sprintf("failed to write %s: %v", relPath, err))
		return
	}

	a.log.Log("apply: modified %s", relPath)
	outcome.Applied = append(outcome.Applied, relPath)
}

func allApplied(applied []bool) bool {
	for _, ok := range applied {
		if !ok {
			return false
		}
	}
	return true
}

// appliedSummary renders per-hunk flags as e.g. "hunks applied: 2/3".
func appliedSummary(applied []bool) string {
	ok := 0
	for _, a := range applied {
		if a {
			ok++
		}
	}
	return fmt.Sprintf("hunks applied: %d/%d", ok, len(applied))
}
