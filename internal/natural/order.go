// Package natural orders floor and position identifiers by the number they
// embed ("P2" before "P10") instead of byte order.
package natural

import (
	"sort"
	"strings"
)

// leadingNumber returns the first maximal run of ASCII digits in s with
// leading zeros removed. A string without digits yields "" which compares as 0.
func leadingNumber(s string) string {
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return ""
	}
	end := start
	for end < len(s) && isDigit(rune(s[end])) {
		end++
	}
	return strings.TrimLeft(s[start:end], "0")
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Compare returns -1, 0 or +1. The embedded numbers are compared first
// (digit strings are compared by length then bytes, so arbitrarily long runs
// never overflow); on a tie the original strings decide.
func Compare(a, b string) int {
	na, nb := leadingNumber(a), leadingNumber(b)
	switch {
	case len(na) < len(nb):
		return -1
	case len(na) > len(nb):
		return 1
	}
	if c := strings.Compare(na, nb); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Less reports whether a sorts before b.
func Less(a, b string) bool { return Compare(a, b) < 0 }

// Cell is anything addressed by a floor and a position.
type Cell interface {
	FloorID() string
	PositionID() string
}

// CompareCells orders by floor first, then position.
func CompareCells(a, b Cell) int {
	if c := Compare(a.FloorID(), b.FloorID()); c != 0 {
		return c
	}
	return Compare(a.PositionID(), b.PositionID())
}

// Strings sorts ids in place.
func Strings(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool { return Less(ids[i], ids[j]) })
}

// SortCells sorts any slice of cells in place by (floor, position).
func SortCells[T Cell](cells []T) {
	sort.SliceStable(cells, func(i, j int) bool { return CompareCells(cells[i], cells[j]) < 0 })
}
