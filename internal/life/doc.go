// Package life implements a bordered cellular-automaton grid on which
// Conway and Fredkin cells coexist.
//
// Responsibilities:
//   - Cell model: a tagged value struct (Kind, Alive, Age) with a
//     single-glyph text form per state
//   - Rules: Conway (eight neighbors), Fredkin (four orthogonal
//     neighbors, aging, permanent transmutation to Conway at age 2)
//   - Grid: flat bordered storage, snapshot-consistent evolution,
//     bounds-checked access, row-major interior iteration
//   - Board text: Parse and Render in the canonical format
//
// Key types:
//   - Cell: one board position; a plain value, so copying is cloning
//   - Grid: owns the bordered board plus a scratch buffer for evolution
//   - BoardIterator: scanner-style traversal of the interior
//
// Dependency rule: this package performs no logging and no I/O beyond the
// io.Reader/io.Writer handed to Parse and Render. Failures surface as the
// typed errors ParseError, MalformedBoardError and IndexError.
package life
