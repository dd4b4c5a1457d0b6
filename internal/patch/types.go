package patch

// DevNull is the header path marking the absent side of a creation or
// deletion record.
const DevNull = "/dev/null"

// ActionType defines the kind of change a file record describes
type ActionType string

const (
	// ActionCreate represents creating a new file
	ActionCreate ActionType = "create"
	// ActionDelete represents deleting an existing file
	ActionDelete ActionType = "delete"
	// ActionModify represents modifying an existing file
	ActionModify ActionType = "modify"
)

// FileRecord is one per-file section carved out of a combined patch payload.
// Paths are verbatim from the headers, including any a/ b/ style prefixes.
type FileRecord struct {
	OldPath string
	NewPath string
	Body    string
}

// Kind classifies the record by its sentinel sides.
func (r FileRecord) Kind() ActionType {
	switch {
	case r.OldPath == DevNull:
		return ActionCreate
	case r.NewPath == DevNull:
		return ActionDelete
	default:
		return ActionModify
	}
}

// Chunk represents one contiguous run of deletions and insertions inside a
// hunk. OrigIndex is the offset of the run within the hunk's old-side lines
// until the hunk has been located, after which it is rebased to an absolute
// line index in the target file.
type Chunk struct {
	OrigIndex int
	DelLines  []string
	InsLines  []string
}

// Hunk is one @@-delimited block of a diff: the old-side lines (context plus
// deletions, in order) it must locate in the target, the chunks to splice in
// once located, and the nominal 1-based anchor from the hunk header.
type Hunk struct {
	OldStart int
	OldLines []string
	Chunks   []Chunk
}

// Outcome accumulates the per-record results of applying one payload.
// Applied holds relative paths whose on-disk write succeeded, in record
// order. Details holds one human-readable entry per failed record.
type Outcome struct {
	Applied []string
	Details []string
}

// OK reports whether every record applied cleanly.
func (o *Outcome) OK() bool {
	return len(o.Details) == 0
}

// DiffError represents an error found while parsing patch text
type DiffError struct {
	Message string
}

func (e DiffError) Error() string {
	return e.Message
}
