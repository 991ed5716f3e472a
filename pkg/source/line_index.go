package source

import "sort"

// LineIndex maps byte offsets into a source buffer to 1-based (line, column)
// pairs. The index is built once from the source text and is immutable
// thereafter; resolution is a binary search over ascending line-start
// offsets.
type LineIndex struct {
	// starts[i] is the byte offset at which line i+1 begins.
	starts []int
}

// NewLineIndex builds a line index over src. Offset 0 is always the start of
// line 1, even when src is empty.
func NewLineIndex(src []byte) *LineIndex {
	starts := []int{0}

	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &LineIndex{starts}
}

// Resolve determines the 1-based (line, column) pair for a given byte offset.
// Offsets beyond the end of the source clamp to the last line.
func (li *LineIndex) Resolve(offset int) (line, col int) {
	// Find the greatest line-start <= offset.
	i := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	})
	// i is the first line-start strictly greater than offset, so the
	// enclosing line is i-1 (0-based), clamped to the last known line.
	idx := i - 1
	if idx < 0 {
		idx = 0
	} else if idx >= len(li.starts) {
		idx = len(li.starts) - 1
	}

	return idx + 1, offset - li.starts[idx] + 1
}

// LineCount returns the number of lines recorded by this index.
func (li *LineIndex) LineCount() int {
	return len(li.starts)
}

// LineStart returns the byte offset at which the given 1-based line begins.
func (li *LineIndex) LineStart(line int) int {
	idx := clamp(line-1, 0, len(li.starts)-1)

	return li.starts[idx]
}

// GetLineText returns the raw line text (trailing '\r'/'\n' stripped)
// enclosing the given offset within src, along with the 1-based line number.
func GetLineText(offset int, src []byte) (text string, lineNum int) {
	li := NewLineIndex(src)
	line, _ := li.Resolve(offset)
	start := li.LineStart(line)

	end := start
	for end < len(src) && src[end] != '\n' {
		end++
	}

	lineText := src[start:end]
	lineText = trimTrailingCR(lineText)

	return string(lineText), line
}

func trimTrailingCR(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\r' {
		return b[:n-1]
	}

	return b
}
