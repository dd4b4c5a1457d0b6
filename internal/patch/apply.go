package patch

import (
	"strings"
)

// Fuzz penalties for the progressively looser matching passes.
const (
	fuzzExact     = 0
	fuzzTrimRight = 1
	fuzzTrimAll   = 100
)

// ApplyHunks applies hunks to content with offset-tolerant matching. Each
// hunk's old-side lines are located starting at the nominal position from
// its header, then at positions of increasing distance from it, never
// overlapping an earlier hunk. Matching is attempted at three strictness
// levels: exact, trailing-whitespace trimmed, and fully trimmed, each
// raising the fuzz score.
//
// It returns the rewritten content, a per-hunk applied flag, and the highest
// fuzz encountered. Callers that require full application must check every
// flag; the returned content is only meaningful when all of them are true.
func ApplyHunks(content string, hunks []Hunk) (string, []bool, int) {
	lines := strings.Split(content, "\n")
	applied := make([]bool, len(hunks))

	var chunks []Chunk
	searchFrom := 0
	maxFuzz := 0

	for i, h := range hunks {
		want := h.OldStart - 1
		if want < searchFrom {
			want = searchFrom
		}

		idx, fuzz := findContext(lines, h.OldLines, want, searchFrom)
		if idx == -1 {
			continue
		}

		applied[i] = true
		if fuzz > maxFuzz {
			maxFuzz = fuzz
		}

		// Rebase the chunk offsets from hunk-relative to absolute.
		for _, c := range h.Chunks {
			c.OrigIndex += idx
			chunks = append(chunks, c)
		}
		searchFrom = idx + len(h.OldLines)
	}

	return spliceChunks(lines, chunks), applied, maxFuzz
}

// spliceChunks rebuilds the file from the original lines and the located
// chunks, which must be in ascending OrigIndex order.
func spliceChunks(lines []string, chunks []Chunk) string {
	dest := make([]string, 0, len(lines))
	origIndex := 0

	for _, chunk := range chunks {
		if chunk.OrigIndex > origIndex {
			dest = append(dest, lines[origIndex:chunk.OrigIndex]...)
		}
		dest = append(dest, chunk.InsLines...)
		origIndex = chunk.OrigIndex + len(chunk.DelLines)
	}

	if origIndex < len(lines) {
		dest = append(dest, lines[origIndex:]...)
	}

	return strings.Join(dest, "\n")
}

// findContext locates context within lines, preferring positions close to
// want and never before from. It returns the matched index and a fuzz score,
// or -1 if no pass produces a match.
func findContext(lines []string, context []string, want, from int) (int, int) {
	last := len(lines) - len(context)
	if last < from {
		return -1, 0
	}
	if len(context) == 0 {
		if want > last {
			want = last
		}
		return want, 0
	}
	if want > last {
		want = last
	}

	type pass struct {
		eq   func(a, b string) bool
		fuzz int
	}
	passes := []pass{
		{func(a, b string) bool { return a == b }, fuzzExact},
		{func(a, b string) bool {
			return strings.TrimRight(a, " \t") == strings.TrimRight(b, " \t")
		}, fuzzTrimRight},
		{func(a, b string) bool {
			return strings.TrimSpace(a) == strings.TrimSpace(b)
		}, fuzzTrimAll},
	}

	for _, p := range passes {
		// Expanding search: the nominal position first, then alternating
		// offsets of growing distance on either side of it.
		for dist := 0; ; dist++ {
			lo, hi := want-dist, want+dist
			loOK := lo >= from
			hiOK := hi <= last
			if !loOK && !hiOK {
				break
			}
			if hiOK && matchAt(lines, context, hi, p.eq) {
				return hi, p.fuzz
			}
			if loOK && dist > 0 && matchAt(lines, context, lo, p.eq) {
				return lo, p.fuzz
			}
		}
	}

	return -1, 0
}

func matchAt(lines []string, context []string, at int, eq func(a, b string) bool) bool {
	for j := range context {
		if !eq(lines[at+j], context[j]) {
			return false
		}
	}
	return true
}
