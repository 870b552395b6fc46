package engine

import "slices"

// MinRun is the shortest run of identical tiles that counts as a match.
const MinRun = 3

// Match is a maximal group of same-type cells formed by one or more runs of
// length >= MinRun that share cells (a straight line, or an L/T/plus shape).
type Match struct {
	Type  TileType
	Cells []Coord // sorted row-major
}

// Size returns the number of distinct cells in the match.
func (m Match) Size() int {
	return len(m.Cells)
}

// Contains reports whether c is a member of the match.
func (m Match) Contains(c Coord) bool {
	return slices.Contains(m.Cells, c)
}

// run is a maximal horizontal or vertical line of identical tiles.
type run struct {
	start  Coord
	length int
	across bool // horizontal when true
}

func (r run) cell(i int) Coord {
	if r.across {
		return Coord{X: r.start.X + i, Y: r.start.Y}
	}
	return Coord{X: r.start.X, Y: r.start.Y + i}
}

// findRuns returns every maximal run of length >= MinRun, horizontal runs
// first (row-major), then vertical runs (column-major).
func findRuns(m Matrix) []run {
	var runs []run
	for y := range m.h {
		x := 0
		for x < m.w {
			t := m.cells[y*m.w+x]
			end := x + 1
			for end < m.w && m.cells[y*m.w+end] == t {
				end++
			}
			if end-x >= MinRun {
				runs = append(runs, run{start: C(x, y), length: end - x, across: true})
			}
			x = end
		}
	}
	for x := range m.w {
		y := 0
		for y < m.h {
			t := m.cells[y*m.w+x]
			end := y + 1
			for end < m.h && m.cells[end*m.w+x] == t {
				end++
			}
			if end-y >= MinRun {
				runs = append(runs, run{start: C(x, y), length: end - y, across: false})
			}
			y = end
		}
	}
	return runs
}

// unionFind is a minimal disjoint-set over run indices.
type unionFind []int

func newUnionFind(n int) unionFind {
	uf := make(unionFind, n)
	for i := range uf {
		uf[i] = i
	}
	return uf
}

func (uf unionFind) find(i int) int {
	for uf[i] != i {
		uf[i] = uf[uf[i]]
		i = uf[i]
	}
	return i
}

func (uf unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf[rb] = ra
	}
}

// FindMatches returns every distinct match on the matrix. Runs that share a
// cell are merged into one match; the result is ordered by each match's
// first cell in row-major order.
func FindMatches(m Matrix) []Match {
	runs := findRuns(m)
	if len(runs) == 0 {
		return nil
	}

	uf := newUnionFind(len(runs))
	owner := make(map[Coord]int, len(runs)*MinRun)
	for i, r := range runs {
		for j := range r.length {
			c := r.cell(j)
			if prev, ok := owner[c]; ok {
				uf.union(prev, i)
			} else {
				owner[c] = i
			}
		}
	}

	groups := make(map[int][]Coord)
	for c, i := range owner {
		root := uf.find(i)
		groups[root] = append(groups[root], c)
	}

	matches := make([]Match, 0, len(groups))
	for _, cells := range groups {
		slices.SortFunc(cells, Coord.Compare)
		matches = append(matches, Match{Type: m.At(cells[0]), Cells: cells})
	}
	slices.SortFunc(matches, func(a, b Match) int {
		return a.Cells[0].Compare(b.Cells[0])
	})
	return matches
}

// FindBestMatch returns the largest match on the matrix. Ties go to the
// match whose first cell comes first in row-major order. The boolean is
// false when no run of MinRun identical tiles exists anywhere.
func FindBestMatch(m Matrix) (Match, bool) {
	matches := FindMatches(m)
	if len(matches) == 0 {
		return Match{}, false
	}
	best := matches[0]
	for _, match := range matches[1:] {
		if match.Size() > best.Size() {
			best = match
		}
	}
	return best, true
}

// HasMatch reports whether any run of MinRun identical tiles exists.
func HasMatch(m Matrix) bool {
	return len(findRuns(m)) > 0
}
