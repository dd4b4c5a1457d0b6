package patch

import (
	"regexp"
	"strconv"
	"strings"
)

var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// noNewlineMarker is the conventional "\ No newline at end of file" line.
// It carries no content and is dropped during parsing.
const noNewlineMarker = `\`

// ParseHunks parses a record body into hunks. The accepted grammar is
// deliberately lenient, mirroring what common diff producers emit:
//
//   - "@@ -a[,b] +c[,d] @@ ..." opens a hunk anchored at old-file line a
//   - body lines are classified by their first byte: ' ' context,
//     '-' deletion, '+' insertion
//   - a line with no recognized prefix is tolerated as context
//   - "\ No newline at end of file" markers are dropped
//   - trailing carriage returns are stripped
//
// A body with no hunk header at all is treated as a single hunk anchored at
// line 1. A body that is malformed beyond use (a mangled @@ header, or no
// deletions or insertions anywhere) is a parse error.
func ParseHunks(body string) ([]Hunk, error) {
	lines := strings.Split(body, "\n")

	var hunks []Hunk
	var cur *Hunk

	// State for the chunk being accumulated inside the current hunk.
	var delLines, insLines []string
	mode := "keep"

	finishChunk := func() {
		if cur == nil || (len(delLines) == 0 && len(insLines) == 0) {
			return
		}
		cur.Chunks = append(cur.Chunks, Chunk{
			OrigIndex: len(cur.OldLines) - len(delLines),
			DelLines:  delLines,
			InsLines:  insLines,
		})
		delLines, insLines = nil, nil
	}

	finishHunk := func() {
		finishChunk()
		if cur != nil {
			hunks = append(hunks, *cur)
			cur = nil
		}
		mode = "keep"
	}

	startHunk := func(oldStart int) {
		finishHunk()
		cur = &Hunk{OldStart: oldStart}
	}

	for _, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")

		if strings.HasPrefix(line, "@@") {
			m := hunkHeaderRegex.FindStringSubmatch(line)
			if m == nil {
				return nil, &DiffError{Message: "malformed hunk header: " + snippet(line)}
			}
			oldStart, err := strconv.Atoi(m[1])
			if err != nil || oldStart < 0 {
				return nil, &DiffError{Message: "malformed hunk header: " + snippet(line)}
			}
			startHunk(oldStart)
			continue
		}

		if strings.HasPrefix(line, noNewlineMarker) {
			continue
		}

		if cur == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			// Headerless body: treat everything as one hunk at the top of
			// the file.
			cur = &Hunk{OldStart: 1}
		}

		lastMode := mode
		content := line
		switch {
		case strings.HasPrefix(line, "+"):
			mode = "add"
			content = line[1:]
		case strings.HasPrefix(line, "-"):
			mode = "delete"
			content = line[1:]
		case strings.HasPrefix(line, " "):
			mode = "keep"
			content = line[1:]
		default:
			// Tolerate context lines missing their leading space.
			mode = "keep"
		}

		if mode == "keep" && lastMode != mode {
			finishChunk()
		}

		switch mode {
		case "delete":
			delLines = append(delLines, content)
			cur.OldLines = append(cur.OldLines, content)
		case "add":
			insLines = append(insLines, content)
		default:
			cur.OldLines = append(cur.OldLines, content)
		}
	}
	finishHunk()

	changes := 0
	for _, h := range hunks {
		changes += len(h.Chunks)
	}
	if changes == 0 {
		return nil, &DiffError{Message: "no additions or removals in hunk body: " + snippet(body)}
	}

	return hunks, nil
}

// snippet bounds a piece of offending patch text for inclusion in error
// messages.
func snippet(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	const max = 120
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
