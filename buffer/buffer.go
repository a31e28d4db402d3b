package buffer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Buffer is a read-mostly, line-based view of a document. Columns are rune
// indexes into Lines.
type Buffer struct {
	Lines      []string
	Path       string
	Cursor     Cursor
	Selection  *Selection
	Language   string
	ReadOnly   bool
	TabSize    int
	LineEnding string // "LF" or "CRLF"
	Encoding   string // Detected encoding (UTF-8, Latin-1, etc.)
}

func NewBuffer(tabSize int) *Buffer {
	return &Buffer{
		Lines:      []string{""},
		TabSize:    tabSize,
		LineEnding: "LF",
		Encoding:   "UTF-8",
	}
}

// NewBufferFromText splits text into lines. CRLF line endings are normalized.
func NewBufferFromText(text string, tabSize int) *Buffer {
	b := NewBuffer(tabSize)
	if strings.Contains(text, "\r\n") {
		b.LineEnding = "CRLF"
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	b.Lines = strings.Split(text, "\n")
	return b
}

func NewBufferFromFile(path string, tabSize int) (*Buffer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > 100*1024*1024 { // 100MB
		return nil, fmt.Errorf("file too large (%d MB), max supported is 100 MB", info.Size()/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Binary file detection: check first 8KB for null bytes
	checkLen := len(data)
	if checkLen > 8192 {
		checkLen = 8192
	}
	isBinary := false
	for i := 0; i < checkLen; i++ {
		if data[i] == 0 {
			isBinary = true
			break
		}
	}

	content := strings.TrimRight(string(data), "\n")
	b := NewBufferFromText(content, tabSize)
	if strings.HasSuffix(content, "\r") {
		b.Lines[len(b.Lines)-1] = strings.TrimRight(b.Lines[len(b.Lines)-1], "\r")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	b.Path = abs
	b.ReadOnly = isBinary
	b.Encoding = detectEncoding(data)
	return b, nil
}

// detectEncoding checks BOM and validates UTF-8 to determine file encoding.
func detectEncoding(data []byte) string {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return "UTF-8 BOM"
	}
	if len(data) >= 2 {
		if data[0] == 0xFF && data[1] == 0xFE {
			return "UTF-16 LE"
		}
		if data[0] == 0xFE && data[1] == 0xFF {
			return "UTF-16 BE"
		}
	}
	if utf8.Valid(data) {
		return "UTF-8"
	}
	return "Latin-1"
}

// Location returns the document location as a file:// URI, or "" for an
// unsaved buffer.
func (b *Buffer) Location() string {
	if b.Path == "" {
		return ""
	}
	return "file://" + filepath.ToSlash(b.Path)
}

// RuneLen returns the number of runes in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

func (b *Buffer) lineRunes(line int) []rune {
	if line < 0 || line >= len(b.Lines) {
		return nil
	}
	return []rune(b.Lines[line])
}

// Clamp moves c onto the nearest valid position.
func (b *Buffer) Clamp(c Cursor) Cursor {
	if c.Line < 0 {
		return Cursor{}
	}
	if c.Line >= len(b.Lines) {
		last := len(b.Lines) - 1
		return Cursor{Line: last, Col: RuneLen(b.Lines[last])}
	}
	if c.Col < 0 {
		c.Col = 0
	}
	if n := RuneLen(b.Lines[c.Line]); c.Col > n {
		c.Col = n
	}
	return c
}

// End returns the position just past the last character.
func (b *Buffer) End() Cursor {
	last := len(b.Lines) - 1
	return Cursor{Line: last, Col: RuneLen(b.Lines[last])}
}

// RuneAt returns the character at p. The position at the end of a line
// that is not the last one holds '\n'. The end of the buffer holds nothing.
func (b *Buffer) RuneAt(p Cursor) (rune, bool) {
	if p.Line < 0 || p.Line >= len(b.Lines) {
		return 0, false
	}
	runes := b.lineRunes(p.Line)
	switch {
	case p.Col < 0:
		return 0, false
	case p.Col < len(runes):
		return runes[p.Col], true
	case p.Col == len(runes) && p.Line < len(b.Lines)-1:
		return '\n', true
	}
	return 0, false
}

// Next steps one character forward. It reports false when p is already at
// the end of the buffer.
func (b *Buffer) Next(p Cursor) (Cursor, bool) {
	p = b.Clamp(p)
	if p.Col < RuneLen(b.Lines[p.Line]) {
		return Cursor{Line: p.Line, Col: p.Col + 1}, true
	}
	if p.Line < len(b.Lines)-1 {
		return Cursor{Line: p.Line + 1}, true
	}
	return p, false
}

// Prev steps one character backward. It reports false at the start of the
// buffer.
func (b *Buffer) Prev(p Cursor) (Cursor, bool) {
	p = b.Clamp(p)
	if p.Col > 0 {
		return Cursor{Line: p.Line, Col: p.Col - 1}, true
	}
	if p.Line > 0 {
		return Cursor{Line: p.Line - 1, Col: RuneLen(b.Lines[p.Line-1])}, true
	}
	return p, false
}

// Slice returns the text between start (inclusive) and end (exclusive).
func (b *Buffer) Slice(start, end Cursor) string {
	start, end = b.Clamp(start), b.Clamp(end)
	if !start.Before(end) {
		return ""
	}
	if start.Line == end.Line {
		return string(b.lineRunes(start.Line)[start.Col:end.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lineRunes(start.Line)[start.Col:]))
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.Lines[i])
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lineRunes(end.Line)[:end.Col]))
	return sb.String()
}

// SelectedText returns the selected text, or "" without a selection.
func (b *Buffer) SelectedText() string {
	if b.Selection == nil || b.Selection.Empty() {
		return ""
	}
	return b.Slice(b.Selection.Start, b.Selection.End)
}

func (b *Buffer) MoveLeft() {
	if p, ok := b.Prev(b.Cursor); ok {
		b.Cursor = p
	}
}

func (b *Buffer) MoveRight() {
	if p, ok := b.Next(b.Cursor); ok {
		b.Cursor = p
	}
}

func (b *Buffer) MoveUp() {
	if b.Cursor.Line > 0 {
		b.Cursor = b.Clamp(Cursor{Line: b.Cursor.Line - 1, Col: b.Cursor.Col})
	}
}

func (b *Buffer) MoveDown() {
	if b.Cursor.Line < len(b.Lines)-1 {
		b.Cursor = b.Clamp(Cursor{Line: b.Cursor.Line + 1, Col: b.Cursor.Col})
	}
}
