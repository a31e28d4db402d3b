package highlight

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/gdamore/tcell/v2"
)

// contextLines is how far above the first visible line tokenising starts,
// so multi-line constructs opened off-screen still colour correctly.
const contextLines = 50

// Span styles the runes [Start, End) of one line.
type Span struct {
	Start int
	End   int
	Style tcell.Style
}

// StyleAt returns the style of column col, or def when no span covers it.
func StyleAt(spans []Span, col int, def tcell.Style) tcell.Style {
	for _, s := range spans {
		if col >= s.Start && col < s.End {
			return s.Style
		}
	}
	return def
}

type Highlighter struct {
	cache map[string][][]Span
}

func New() *Highlighter {
	return &Highlighter{cache: make(map[string][][]Span)}
}

// Invalidate drops every cached range of document key.
func (h *Highlighter) Invalidate(key string) {
	prefix := key + "\x00"
	for k := range h.cache {
		if strings.HasPrefix(k, prefix) {
			delete(h.cache, k)
		}
	}
}

// Lines returns the spans of lines [start, end). Documents are cached under
// key, which must change whenever the text does.
func (h *Highlighter) Lines(key string, lines []string, lang string, start, end int, base tcell.Style) [][]Span {
	if end > len(lines) {
		end = len(lines)
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return nil
	}

	cacheKey := fmt.Sprintf("%s\x00%s:%d:%d", key, lang, start, end)
	if cached, ok := h.cache[cacheKey]; ok {
		return cached
	}

	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	from := start - contextLines
	if from < 0 {
		from = 0
	}
	iter, err := lexer.Tokenise(nil, strings.Join(lines[from:end], "\n"))
	if err != nil {
		return make([][]Span, end-start)
	}

	spans := make([][]Span, end-from)
	line, col := 0, 0
	for _, tok := range iter.Tokens() {
		style := tokenStyle(tok.Type, base)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				line++
				col = 0
			}
			if line >= len(spans) {
				break
			}
			n := utf8.RuneCountInString(part)
			if n > 0 {
				spans[line] = append(spans[line], Span{Start: col, End: col + n, Style: style})
				col += n
			}
		}
	}

	result := spans[start-from:]
	h.cache[cacheKey] = result
	return result
}

func DetectLanguage(filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	config := lexer.Config()
	if config == nil {
		return ""
	}
	return config.Name
}

func tokenStyle(t chroma.TokenType, base tcell.Style) tcell.Style {
	switch {
	case t.InCategory(chroma.Keyword):
		return base.Foreground(tcell.ColorBlue).Bold(true)

	case t == chroma.NameBuiltin || t == chroma.NameBuiltinPseudo:
		return base.Foreground(tcell.ColorBlue)

	case t.InSubCategory(chroma.LiteralString):
		return base.Foreground(tcell.ColorGreen)

	case t.InCategory(chroma.Comment):
		return base.Foreground(tcell.ColorGray).Italic(true)

	case t.InSubCategory(chroma.LiteralNumber):
		return base.Foreground(tcell.ColorDarkCyan)

	case t == chroma.NameFunction || t == chroma.NameFunctionMagic:
		return base.Foreground(tcell.ColorYellow)

	case t == chroma.NameClass || t == chroma.NameException || t == chroma.NameDecorator:
		return base.Foreground(tcell.ColorFuchsia)
	}
	return base
}
