package life

// Neighborhood is a snapshot of the eight cells around a position, in the
// fixed order up, right, down, left, top-right, bottom-right, bottom-left,
// top-left. The first four slots are the orthogonal neighbors, the last
// four the diagonals. Border neighbors are never alive, so edges need no
// special casing.
type Neighborhood [8]Cell

// Neighborhood slot indices.
const (
	NbUp = iota
	NbRight
	NbDown
	NbLeft
	NbTopRight
	NbBottomRight
	NbBottomLeft
	NbTopLeft
)

// aliveOrthogonal counts live cells among the four orthogonal slots.
func (nb Neighborhood) aliveOrthogonal() int {
	n := 0
	for i := NbUp; i <= NbLeft; i++ {
		if nb[i].Alive {
			n++
		}
	}
	return n
}

// aliveTotal counts live cells across all eight slots.
func (nb Neighborhood) aliveTotal() int {
	n := 0
	for _, c := range nb {
		if c.Alive {
			n++
		}
	}
	return n
}

// Next computes the cell's next-generation value from a snapshot of its
// neighborhood. It is a pure function: the receiver is never mutated and
// nothing outside the arguments is consulted, so evaluation order across a
// board cannot matter.
//
// Conway counts all eight neighbors: a live cell stays alive on 2 or 3, a
// dead cell is born on exactly 3. Fredkin counts only the orthogonal four
// and lives iff that count is odd; survival or birth increments its age,
// death resets the age to zero, and a post-increment age that reaches 2
// transmutes the cell permanently into a live Conway cell. Border cells
// are inert.
func (c Cell) Next(nb Neighborhood) Cell {
	switch c.Kind {
	case KindConway:
		n := nb.aliveTotal()
		return Cell{Kind: KindConway, Alive: n == 3 || (c.Alive && n == 2)}
	case KindFredkin:
		if nb.aliveOrthogonal()%2 == 0 {
			return Cell{Kind: KindFredkin}
		}
		age := c.Age + 1
		if age >= transmuteAge {
			// One-way: the Fredkin identity and its age are discarded.
			return Cell{Kind: KindConway, Alive: true}
		}
		return Cell{Kind: KindFredkin, Alive: true, Age: age}
	default:
		return c
	}
}
