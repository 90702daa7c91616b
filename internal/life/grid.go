package life

import (
	"strings"
	"sync"
)

// Grid owns a bordered board of cells and evolves it generation by
// generation. Storage is a single flat (height+2) x (width+2) slice,
// row-major, with the outer ring permanently set to border cells so rule
// evaluation never needs edge special cases. Interior coordinates are
// 0-based with x the row and y the column.
//
// Grid methods are not safe for concurrent use; one goroutine owns the grid
// between calls. SetWorkers only parallelizes the interior of a single
// EvolveAll call.
type Grid struct {
	width  int
	height int

	generation int
	population int

	// cells is the live board; scratch receives the next generation.
	// EvolveAll reads cells, writes scratch, then swaps the two. Both
	// carry the border ring at all times.
	cells   []Cell
	scratch []Cell

	workers int
}

// NewGrid returns a width x height grid of dead cells of the ruleset's fill
// kind, at generation 0 with population 0. Both dimensions must be at
// least 1.
func NewGrid(width, height int, rs Ruleset) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, &MalformedBoardError{}
	}
	return &Grid{
		width:   width,
		height:  height,
		cells:   newBoard(width, height, rs.fill()),
		scratch: newBoard(width, height, rs.fill()),
	}, nil
}

// newBoard allocates a bordered board with the interior set to fill.
func newBoard(width, height int, fill Cell) []Cell {
	cells := make([]Cell, (width+2)*(height+2))
	for i := range cells {
		cells[i] = Cell{Kind: KindBorder}
	}
	for x := 0; x < height; x++ {
		for y := 0; y < width; y++ {
			cells[(x+1)*(width+2)+y+1] = fill
		}
	}
	return cells
}

// idx maps interior coordinates to the flat bordered index.
func (g *Grid) idx(x, y int) int {
	return (x+1)*(g.width+2) + y + 1
}

// Width returns the interior width.
func (g *Grid) Width() int { return g.width }

// Height returns the interior height.
func (g *Grid) Height() int { return g.height }

// Generation returns the number of completed EvolveAll calls.
func (g *Grid) Generation() int { return g.generation }

// Population returns the live interior cell count as of the last Parse or
// EvolveAll. Cells seeded directly through At or the iterator are absorbed
// into the count at the next EvolveAll.
func (g *Grid) Population() int { return g.population }

// At returns the interior cell at (x, y). The pointer aims into the live
// board, so callers may seed cells in place before evolving. Out-of-range
// coordinates return an IndexError.
func (g *Grid) At(x, y int) (*Cell, error) {
	if x < 0 || x >= g.height || y < 0 || y >= g.width {
		return nil, &IndexError{X: x, Y: y, Width: g.width, Height: g.height}
	}
	return &g.cells[g.idx(x, y)], nil
}

// SetWorkers caps the number of goroutines EvolveAll fans out across
// interior rows. Values below 2 select the serial path. The worker count
// never changes results: workers read only the prior-generation snapshot
// and write disjoint row ranges of the next buffer.
func (g *Grid) SetWorkers(n int) {
	g.workers = n
}

// EvolveAll advances the board exactly one generation. Every rule
// evaluation reads the prior generation; results land in the scratch
// buffer, which becomes the live board only after the whole interior has
// been computed, so no partially evolved state is ever observable. The
// population is then recomputed wholesale and the generation counter
// incremented by one. Border cells are never evolved.
func (g *Grid) EvolveAll() {
	prev, next := g.cells, g.scratch

	workers := g.workers
	if workers > g.height {
		workers = g.height
	}
	if workers > 1 {
		var wg sync.WaitGroup
		rowsPer := (g.height + workers - 1) / workers
		for start := 0; start < g.height; start += rowsPer {
			end := start + rowsPer
			if end > g.height {
				end = g.height
			}
			wg.Add(1)
			go func(start, end int) {
				defer wg.Done()
				g.evolveRows(prev, next, start, end)
			}(start, end)
		}
		wg.Wait()
	} else {
		g.evolveRows(prev, next, 0, g.height)
	}

	g.cells, g.scratch = next, prev

	// Replaced in full each generation, never patched incrementally.
	pop := 0
	for x := 0; x < g.height; x++ {
		base := g.idx(x, 0)
		for y := 0; y < g.width; y++ {
			if g.cells[base+y].Alive {
				pop++
			}
		}
	}
	g.population = pop
	g.generation++
}

// evolveRows computes interior rows [startRow, endRow) of the next
// generation. prev is read-only; concurrent calls write disjoint rows of
// next and so never overlap.
func (g *Grid) evolveRows(prev, next []Cell, startRow, endRow int) {
	stride := g.width + 2
	for x := startRow; x < endRow; x++ {
		for y := 0; y < g.width; y++ {
			i := (x+1)*stride + y + 1
			nb := Neighborhood{
				prev[i-stride],   // up
				prev[i+1],        // right
				prev[i+stride],   // down
				prev[i-1],        // left
				prev[i-stride+1], // top-right
				prev[i+stride+1], // bottom-right
				prev[i+stride-1], // bottom-left
				prev[i-stride-1], // top-left
			}
			next[i] = prev[i].Next(nb)
		}
	}
}

// String returns the canonical text rendering of the grid.
func (g *Grid) String() string {
	var sb strings.Builder
	_ = g.Render(&sb)
	return sb.String()
}

// BoardIterator walks the interior cells in row-major order from (0, 0) to
// (height-1, width-1). Obtain one from Grid.Interior; each call yields an
// independent iterator positioned before the first cell. Mutating cells
// through Cell is allowed and does not invalidate the walk.
//
//	it := g.Interior()
//	for it.Next() {
//		x, y := it.Pos()
//		c := it.Cell()
//		...
//	}
type BoardIterator struct {
	g *Grid
	x int
	y int
}

// Interior returns a fresh iterator over the interior cells.
func (g *Grid) Interior() *BoardIterator {
	return &BoardIterator{g: g, x: 0, y: -1}
}

// Next advances the iterator and reports whether a cell is available.
func (it *BoardIterator) Next() bool {
	it.y++
	if it.y >= it.g.width {
		it.x++
		it.y = 0
	}
	return it.x < it.g.height
}

// Cell returns the current cell. Valid only after Next has returned true.
func (it *BoardIterator) Cell() *Cell {
	return &it.g.cells[it.g.idx(it.x, it.y)]
}

// Pos returns the current interior coordinates. Valid only after Next has
// returned true.
func (it *BoardIterator) Pos() (x, y int) {
	return it.x, it.y
}
