package uri

import (
	"strings"
	"unicode"

	"uriopen/buffer"
)

// delimiters are the punctuation runes that may appear inside a token in
// addition to word characters.
const delimiters = `#/?:%@&=+.'\~-`

// IsDelimiter reports whether r belongs to the delimiter class: word
// characters plus the punctuation found in paths and URIs.
func IsDelimiter(r rune) bool {
	if r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r) {
		return true
	}
	return r < unicode.MaxASCII && strings.ContainsRune(delimiters, r)
}

// Source is the read-only text the extractor scans. *buffer.Buffer
// implements it.
type Source interface {
	RuneAt(p buffer.Cursor) (rune, bool)
	Next(p buffer.Cursor) (buffer.Cursor, bool)
	Prev(p buffer.Cursor) (buffer.Cursor, bool)
	Slice(start, end buffer.Cursor) string
}

// Span delimits a token; End is exclusive.
type Span struct {
	Start, End buffer.Cursor
}

func (s Span) Empty() bool {
	return s.Start.Equal(s.End)
}

// ExtractSpan returns the maximal run of delimiter-class characters around
// ref. A reference outside the class yields an empty span.
func ExtractSpan(src Source, ref buffer.Cursor) Span {
	if r, ok := src.RuneAt(ref); !ok || !IsDelimiter(r) {
		return Span{Start: ref, End: ref}
	}

	end := ref
	for {
		next, ok := src.Next(end)
		if !ok {
			break
		}
		end = next
		if r, ok := src.RuneAt(end); !ok || !IsDelimiter(r) {
			break
		}
	}

	start := ref
	for {
		prev, ok := src.Prev(start)
		if !ok {
			break
		}
		if r, _ := src.RuneAt(prev); !IsDelimiter(r) {
			break
		}
		start = prev
	}

	return Span{Start: start, End: end}
}

// ExtractToken returns the token around ref. The boolean is false when no
// token was found.
func ExtractToken(src Source, ref buffer.Cursor) (string, Span, bool) {
	span := ExtractSpan(src, ref)
	if span.Empty() {
		return "", span, false
	}
	token := src.Slice(span.Start, span.End)
	return token, span, token != ""
}
