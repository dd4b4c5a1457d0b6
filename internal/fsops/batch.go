package fsops

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BatchConcurrency caps how many file reads are in flight at once during a
// batch request. It is a fixed constant, not caller-tunable, so a request
// for thousands of paths cannot exhaust file descriptors.
const BatchConcurrency = 50

// FileResult is the per-path outcome of a batch read. Content and Error
// mirror each other: exactly one is set depending on Success.
type FileResult struct {
	Success bool    `json:"success"`
	Content *string `json:"content,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// ReadBatch reads every path independently under the concurrency cap. An
// empty input is the only request-level error; resolution and read failures
// are per-path results. The returned map is keyed by the exact path strings
// the caller supplied, so callers can correlate input to output regardless
// of completion order or canonicalization.
func ReadBatch(ctx context.Context, paths []string) (map[string]FileResult, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("paths list is required and cannot be empty")
	}

	results := make(map[string]FileResult, len(paths))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(BatchConcurrency)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			res := readOne(path)
			mu.Lock()
			results[path] = res
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; failures live in the per-path results.
	_ = g.Wait()

	return results, nil
}

func readOne(path string) FileResult {
	resolved, err := ResolveFile(path)
	if err != nil {
		return failure(fmt.Sprintf("invalid path: %v", err))
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return failure(fmt.Sprintf("failed to read file: %v", err))
	}

	content := string(data)
	return FileResult{Success: true, Content: &content}
}

func failure(msg string) FileResult {
	return FileResult{Error: &msg}
}
