package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cboragen/cboragen/pkg/source"
)

func TestSpanBasics(t *testing.T) {
	s := source.NewSpan(3, 7)
	assert.Equal(t, 3, s.Start())
	assert.Equal(t, 7, s.End())
	assert.Equal(t, 4, s.Length())
}

func TestSpanMerge(t *testing.T) {
	a := source.NewSpan(5, 10)
	b := source.NewSpan(2, 6)
	m := a.Merge(b)
	assert.Equal(t, 2, m.Start())
	assert.Equal(t, 10, m.End())
}

func TestSpanSliceClampsToBuffer(t *testing.T) {
	buf := []byte("hello")
	s := source.NewSpan(2, 100)
	assert.Equal(t, []byte("llo"), s.Slice(buf))
}

func TestLineIndexResolve(t *testing.T) {
	src := []byte("abc\ndef\nghi")
	li := source.NewLineIndex(src)

	line, col := li.Resolve(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = li.Resolve(4) // 'd'
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)

	line, col = li.Resolve(9) // 'h'
	assert.Equal(t, 3, line)
	assert.Equal(t, 2, col)

	assert.Equal(t, 3, li.LineCount())
}

func TestGetLineTextStripsTrailingCR(t *testing.T) {
	src := []byte("one\r\ntwo\r\nthree")
	text, line := source.GetLineText(6, src) // somewhere in "two"
	assert.Equal(t, "two", text)
	assert.Equal(t, 2, line)
}

func TestFileReadAndText(t *testing.T) {
	file := source.NewFile("t.txt", []byte("hello world"))
	assert.Equal(t, "t.txt", file.Filename())

	span := source.NewSpan(6, 11)
	assert.Equal(t, "world", file.Text(span))
}
