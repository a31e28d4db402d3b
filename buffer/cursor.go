package buffer

import "fmt"

// Cursor is a position in a Buffer. Col counts runes.
type Cursor struct {
	Line, Col int
}

func (c Cursor) Before(other Cursor) bool {
	if c.Line != other.Line {
		return c.Line < other.Line
	}
	return c.Col < other.Col
}

func (c Cursor) Equal(other Cursor) bool {
	return c.Line == other.Line && c.Col == other.Col
}

func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d", c.Line+1, c.Col+1)
}

// Selection is a normalized span, Start never after End.
type Selection struct {
	Start, End Cursor
}

func NewSelection(a, b Cursor) Selection {
	if a.Before(b) {
		return Selection{Start: a, End: b}
	}
	return Selection{Start: b, End: a}
}

func (s Selection) Contains(c Cursor) bool {
	return !c.Before(s.Start) && c.Before(s.End)
}

func (s Selection) Empty() bool {
	return s.Start.Equal(s.End)
}
