package life

import "fmt"

// Kind identifies which rule governs a cell.
type Kind uint8

const (
	KindConway Kind = iota
	KindFredkin
	KindBorder
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConway:
		return "conway"
	case KindFredkin:
		return "fredkin"
	case KindBorder:
		return "border"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// transmuteAge is the age at which a live Fredkin cell becomes a Conway cell.
const transmuteAge = 2

// agePlusGlyph is the age parsed from and rendered as '+'. Ages above nine
// have no digit of their own, so they collapse to this value in board text.
const agePlusGlyph = 10

// Cell is one board position. Cells are plain values: assignment copies the
// whole state, so a snapshot never shares storage with the live board.
// Border cells are never alive and never change.
type Cell struct {
	Kind  Kind
	Alive bool
	Age   int // Fredkin only; zero otherwise
}

// Glyph returns the board-text byte for the cell. Border cells have no
// glyph; they never appear in board text.
func (c Cell) Glyph() byte {
	switch c.Kind {
	case KindConway:
		if c.Alive {
			return '*'
		}
		return '.'
	case KindFredkin:
		if !c.Alive {
			return '-'
		}
		if c.Age >= agePlusGlyph {
			return '+'
		}
		return byte('0' + c.Age)
	default:
		return '?'
	}
}

// glyphCell maps a board-text byte to a cell value.
func glyphCell(b byte) (Cell, bool) {
	switch {
	case b == '.':
		return Cell{Kind: KindConway}, true
	case b == '*':
		return Cell{Kind: KindConway, Alive: true}, true
	case b == '-':
		return Cell{Kind: KindFredkin}, true
	case b >= '0' && b <= '9':
		return Cell{Kind: KindFredkin, Alive: true, Age: int(b - '0')}, true
	case b == '+':
		return Cell{Kind: KindFredkin, Alive: true, Age: agePlusGlyph}, true
	default:
		return Cell{}, false
	}
}

// ParseGlyph converts a board-text byte to a cell value. Fredkin ages parse
// verbatim, even past the transmutation threshold; transmutation is only
// ever applied during evolution.
func ParseGlyph(b byte) (Cell, error) {
	c, ok := glyphCell(b)
	if !ok {
		return Cell{}, &ParseError{Glyph: b}
	}
	return c, nil
}

// Ruleset constrains which glyphs a text board may carry and which kind an
// empty grid is filled with. RulesetMixed admits every glyph.
type Ruleset uint8

const (
	RulesetMixed Ruleset = iota
	RulesetConway
	RulesetFredkin
)

// String returns the lowercase name of the ruleset.
func (rs Ruleset) String() string {
	switch rs {
	case RulesetMixed:
		return "mixed"
	case RulesetConway:
		return "conway"
	case RulesetFredkin:
		return "fredkin"
	default:
		return fmt.Sprintf("ruleset(%d)", uint8(rs))
	}
}

// ParseRuleset maps the flag and config strings to a Ruleset.
func ParseRuleset(s string) (Ruleset, error) {
	switch s {
	case "mixed":
		return RulesetMixed, nil
	case "conway":
		return RulesetConway, nil
	case "fredkin":
		return RulesetFredkin, nil
	default:
		return RulesetMixed, fmt.Errorf("unknown ruleset %q", s)
	}
}

// allows reports whether the ruleset admits cells of the given kind.
func (rs Ruleset) allows(k Kind) bool {
	switch rs {
	case RulesetConway:
		return k == KindConway
	case RulesetFredkin:
		return k == KindFredkin
	default:
		return true
	}
}

// fill returns the dead cell an empty grid is filled with under this ruleset.
func (rs Ruleset) fill() Cell {
	if rs == RulesetFredkin {
		return Cell{Kind: KindFredkin}
	}
	return Cell{Kind: KindConway}
}
