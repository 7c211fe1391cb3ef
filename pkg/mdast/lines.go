package mdast

import (
	"bytes"
	"sort"
)

// LineStarts returns the offset of every line start in content. A trailing
// newline opens one more, empty, line. Empty content has no lines.
func LineStarts(content []byte) []int {
	if len(content) == 0 {
		return nil
	}

	starts := make([]int, 1, bytes.Count(content, []byte{'\n'})+1)
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// LineAt maps a byte offset to a 1-based line and byte column. Offsets at
// or past the end fall on the last line; negative offsets and empty
// documents give (0, 0).
func (d *Document) LineAt(offset int) (int, int) {
	if offset < 0 || len(d.LineStarts) == 0 {
		return 0, 0
	}

	// Index of the last line starting at or before offset.
	idx := sort.SearchInts(d.LineStarts, offset+1) - 1
	return idx + 1, offset - d.LineStarts[idx] + 1
}
