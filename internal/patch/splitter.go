package patch

import (
	"strings"
)

// Header prefixes for the unified-diff sections a payload is split on.
const (
	oldHeaderPrefix = "--- "
	newHeaderPrefix = "+++ "
)

// Split scans a combined multi-file payload and carves it into per-file
// records. Sections are delimited by conventional two-line headers: a line
// beginning "--- " opens a section and a following line beginning "+++ "
// completes it. No blank-line separator is required between sections.
//
// Recovery rules: a new "--- " header flushes the in-progress record,
// silently dropping it if its body ended up empty; a "+++ " header with no
// open section discards the partial state and scanning continues. Body lines
// only accumulate once a complete header pair has been seen. "diff --git"
// and "index" lines are skipped wherever they appear, including between
// sections, and a record body never keeps the empty line produced by the
// payload's own terminal newline.
func Split(payload string) []FileRecord {
	var records []FileRecord

	var (
		oldPath  string
		newPath  string
		body     []string
		haveOld  bool
		havePair bool
	)

	flush := func() {
		// A payload ending in a newline leaves one empty trailing body line.
		// It is an artifact of splitting the payload, not a context line, and
		// would never match a file that lacks a trailing newline. Genuine
		// empty context lines arrive space-prefixed and are unaffected.
		if len(body) > 0 && body[len(body)-1] == "" {
			body = body[:len(body)-1]
		}
		if havePair && len(body) > 0 {
			records = append(records, FileRecord{
				OldPath: oldPath,
				NewPath: newPath,
				Body:    strings.Join(body, "\n"),
			})
		}
		oldPath, newPath = "", ""
		body = nil
		haveOld, havePair = false, false
	}

	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSuffix(line, "\r")

		switch {
		case strings.HasPrefix(line, oldHeaderPrefix):
			flush()
			oldPath = headerPath(strings.TrimPrefix(line, oldHeaderPrefix))
			haveOld = true

		case strings.HasPrefix(line, newHeaderPrefix):
			if !haveOld {
				// Malformed input: an addition header with no preceding
				// removal header. Drop the partial state and keep scanning.
				flush()
				continue
			}
			newPath = headerPath(strings.TrimPrefix(line, newHeaderPrefix))
			havePair = true

		case strings.HasPrefix(line, "diff --git "), strings.HasPrefix(line, "index "):
			// git emits these between sections as well as before the first
			// one; they are never hunk body lines.
			continue

		default:
			if !havePair {
				// Leading noise before any complete header pair, e.g. blank
				// lines or "new file mode" lines.
				continue
			}
			body = append(body, line)
		}
	}
	flush()

	return records
}

// headerPath extracts the path portion of a diff header line. Anything after
// the first tab (conventionally a timestamp) is discarded; the path itself,
// including any leading a/ b/ designator, is kept verbatim.
func headerPath(rest string) string {
	if i := strings.IndexByte(rest, '\t'); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimRight(rest, " ")
}

// StripSegments removes up to levels leading slash-delimited segments from
// path, emulating patch -p style path stripping. A path with fewer segments
// than levels is returned unchanged, as is the /dev/null sentinel.
func StripSegments(path string, levels int) string {
	if levels <= 0 || path == DevNull {
		return path
	}

	trimmed := path
	for i := 0; i < levels; i++ {
		idx := strings.IndexByte(trimmed, '/')
		if idx < 0 || idx == len(trimmed)-1 {
			return path
		}
		trimmed = trimmed[idx+1:]
	}

	return trimmed
}
