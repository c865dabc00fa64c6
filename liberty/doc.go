// Package liberty implements a parser for the Liberty cell-library format.
//
// Liberty files describe standard-cell timing, power, and pin data as a tree
// of named groups: library(...) { cell(...) { pin(...) { ... } } }. Each
// group carries simple attributes (name: value;), complex attributes
// (name (v1, v2);), define statements, and nested sub-groups. /* block */
// comments and backslash-newline continuations are stripped before parsing.
//
// The parser is structured as a hand-rolled recursive-descent parser with
// three layers:
//
//   - Lexer: converts raw bytes into a token stream, stripping comments,
//     whitespace, and line continuations.
//   - Parser: consumes tokens according to the grammar and builds the tree.
//   - Group tree: the output data structure with query helpers (SelectCell,
//     SelectPin, SelectTimingTable), numeric-table accessors (GetArray,
//     SetArray), boolean-function parsing, and the canonical serializer
//     (Format).
//
// Usage:
//
//	library, err := liberty.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cell, err := liberty.SelectCell(library, "INV")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cell.Format())
//
// Boolean pin-function expressions such as "(A * B) + !C" parse through the
// nested boolfunc package.
package liberty
