package life

import "fmt"

// ParseError reports a byte that is not a valid glyph for the ruleset being
// parsed. Line and Col are 1-based; they are zero when the position is
// unknown (single-glyph parsing).
type ParseError struct {
	Line  int
	Col   int
	Glyph byte
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("invalid cell glyph %q", e.Glyph)
	}
	return fmt.Sprintf("invalid cell glyph %q at line %d, column %d", e.Glyph, e.Line, e.Col)
}

// MalformedBoardError reports a board whose rows do not form a non-empty
// rectangle. Row is the 1-based input row that deviates from the first
// row's width; it is zero for an empty board.
type MalformedBoardError struct {
	Row  int
	Want int
	Got  int
}

func (e *MalformedBoardError) Error() string {
	if e.Row == 0 {
		return "malformed board: empty board"
	}
	return fmt.Sprintf("malformed board: row %d is %d cells wide, want %d", e.Row, e.Got, e.Want)
}

// IndexError reports interior coordinates outside the grid.
type IndexError struct {
	X, Y          int
	Width, Height int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("cell (%d, %d) out of range for %dx%d grid", e.X, e.Y, e.Width, e.Height)
}
