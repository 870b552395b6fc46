package engine

// Move is an adjacent swap together with the match it would produce.
// A is always before B in row-major order.
type Move struct {
	A     Coord
	B     Coord
	Match Match
}

// adjacentPairs calls fn for every Manhattan-adjacent pair exactly once:
// for each cell in row-major order, its right neighbour then its lower one.
// Iteration stops early when fn returns false.
func adjacentPairs(w, h int, fn func(a, b Coord) bool) {
	for y := range h {
		for x := range w {
			a := C(x, y)
			if x+1 < w && !fn(a, C(x+1, y)) {
				return
			}
			if y+1 < h && !fn(a, C(x, y+1)) {
				return
			}
		}
	}
}

// FindMoves returns every swap that yields a match, in enumeration order.
func FindMoves(m Matrix) []Move {
	var moves []Move
	adjacentPairs(m.w, m.h, func(a, b Coord) bool {
		if match, ok := FindBestMatch(m.Swapped(a, b)); ok {
			moves = append(moves, Move{A: a, B: b, Match: match})
		}
		return true
	})
	return moves
}

// FindBestMove returns the swap whose resulting match is largest. Ties keep
// the earliest swap in enumeration order. The boolean is false when no
// single swap produces a match, meaning the board must be reshuffled.
func FindBestMove(m Matrix) (Move, bool) {
	var best Move
	found := false
	adjacentPairs(m.w, m.h, func(a, b Coord) bool {
		match, ok := FindBestMatch(m.Swapped(a, b))
		if ok && (!found || match.Size() > best.Match.Size()) {
			best = Move{A: a, B: b, Match: match}
			found = true
		}
		return true
	})
	return best, found
}

// HasMove reports whether at least one swap yields a match.
func HasMove(m Matrix) bool {
	found := false
	adjacentPairs(m.w, m.h, func(a, b Coord) bool {
		found = HasMatch(m.Swapped(a, b))
		return !found
	})
	return found
}
