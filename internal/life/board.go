package life

import (
	"bufio"
	"fmt"
	"io"
)

// Parse reads a text board into a grid. Rows are lines of glyphs; reading
// stops at EOF or at the first blank line, and a trailing '\r' per line is
// tolerated. Every row must match the first row's width, every glyph must
// be admitted by the ruleset, and at least one row must be present. The
// returned grid is at generation 0 with the population counted from the
// parsed cells.
func Parse(r io.Reader, rs Ruleset) (*Grid, error) {
	scanner := bufio.NewScanner(r)

	var rows [][]Cell
	width := 0
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if n := len(raw); n > 0 && raw[n-1] == '\r' {
			raw = raw[:n-1]
		}
		if len(raw) == 0 {
			break
		}
		if width == 0 {
			width = len(raw)
		} else if len(raw) != width {
			return nil, &MalformedBoardError{Row: line, Want: width, Got: len(raw)}
		}
		row := make([]Cell, len(raw))
		for i, b := range raw {
			c, ok := glyphCell(b)
			if !ok || !rs.allows(c.Kind) {
				return nil, &ParseError{Line: line, Col: i + 1, Glyph: b}
			}
			row[i] = c
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	if len(rows) == 0 {
		return nil, &MalformedBoardError{}
	}

	g, err := NewGrid(width, len(rows), rs)
	if err != nil {
		return nil, err
	}
	pop := 0
	for x, row := range rows {
		base := g.idx(x, 0)
		for y, c := range row {
			g.cells[base+y] = c
			if c.Alive {
				pop++
			}
		}
	}
	g.population = pop
	return g, nil
}

// Render writes the canonical text form of the grid: a header naming the
// generation and population, one line of glyphs per interior row, then a
// single blank line. The first write error is returned.
func (g *Grid) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Generation = %d, Population = %d.\n", g.generation, g.population); err != nil {
		return err
	}
	row := make([]byte, g.width+1)
	row[g.width] = '\n'
	for x := 0; x < g.height; x++ {
		base := g.idx(x, 0)
		for y := 0; y < g.width; y++ {
			row[y] = g.cells[base+y].Glyph()
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
