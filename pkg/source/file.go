package source

import "os"

// File represents a single source buffer together with its filename and a
// lazily-built line index. The buffer is caller-owned: spans produced while
// lexing/parsing this file are only meaningful for as long as the buffer
// itself is kept alive (see the AST's ownership invariant).
type File struct {
	filename string
	contents []byte
	lines    *LineIndex
}

// NewFile constructs a source file from an in-memory buffer. The caller
// retains ownership of buf; File never copies it.
func NewFile(filename string, buf []byte) *File {
	return &File{filename: filename, contents: buf}
}

// ReadFile reads filename from disk and wraps its contents in a File.
func ReadFile(filename string) (*File, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return NewFile(filename, buf), nil
}

// Filename returns the name this file was registered under.
func (f *File) Filename() string {
	return f.filename
}

// Contents returns the raw bytes of this file.
func (f *File) Contents() []byte {
	return f.contents
}

// Lines returns this file's line index, building it on first use.
func (f *File) Lines() *LineIndex {
	if f.lines == nil {
		f.lines = NewLineIndex(f.contents)
	}

	return f.lines
}

// Text returns the substring of this file's contents covered by span.
func (f *File) Text(span Span) string {
	return string(span.Slice(f.contents))
}
