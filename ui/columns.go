package ui

import "github.com/mattn/go-runewidth"

// BufferColToDisplayCol converts a rune column to a screen column, with
// tabs expanded and wide runes counted twice.
func BufferColToDisplayCol(line string, bufCol int, tabSize int) int {
	displayCol := 0
	for i, r := range []rune(line) {
		if i >= bufCol {
			break
		}
		displayCol += cellWidth(r, displayCol, tabSize)
	}
	return displayCol
}

// DisplayColToBufferCol returns the rune under screen column target. The
// boolean is false when target lies past the end of the line.
func DisplayColToBufferCol(line string, target int, tabSize int) (int, bool) {
	if target < 0 {
		return 0, false
	}
	displayCol := 0
	for i, r := range []rune(line) {
		displayCol += cellWidth(r, displayCol, tabSize)
		if displayCol > target {
			return i, true
		}
	}
	return len([]rune(line)), false
}

// DisplayWidth is the number of screen columns line occupies.
func DisplayWidth(line string, tabSize int) int {
	return BufferColToDisplayCol(line, len([]rune(line)), tabSize)
}

func cellWidth(r rune, displayCol, tabSize int) int {
	if r == '\t' {
		if tabSize <= 0 {
			tabSize = 4
		}
		return tabSize - (displayCol % tabSize)
	}
	return runewidth.RuneWidth(r)
}
