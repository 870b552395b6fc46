package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBestMoveSimple(t *testing.T) {
	m := MustMatrix([][]TileType{
		{0, 1, 0, 2},
		{2, 0, 1, 2},
		{1, 2, 2, 0},
		{0, 1, 0, 2},
	})
	moves := FindMoves(m)
	require.NotEmpty(t, moves)
	assert.Equal(t, C(1, 0), moves[0].A)
	assert.Equal(t, C(1, 1), moves[0].B)
	assert.Equal(t, []Coord{C(0, 0), C(1, 0), C(2, 0)}, moves[0].Match.Cells)

	// A later swap completes an L of five 2s and beats the first row.
	move, ok := FindBestMove(m)
	require.True(t, ok)
	assert.Equal(t, C(3, 2), move.A)
	assert.Equal(t, C(3, 3), move.B)
	assert.Equal(t, []Coord{C(3, 0), C(3, 1), C(1, 2), C(2, 2), C(3, 2)}, move.Match.Cells)
}

func TestFindBestMoveNone(t *testing.T) {
	m := MustMatrix([][]TileType{
		{0, 1, 2},
		{1, 2, 0},
		{2, 0, 1},
	})
	// Diagonal stripes: every swap leaves at most two equal tiles in a line.
	_, ok := FindBestMove(m)
	assert.False(t, ok)
	assert.False(t, HasMove(m))
	assert.Empty(t, FindMoves(m))
}

func TestFindBestMovePrefersLargerMatch(t *testing.T) {
	m := MustMatrix([][]TileType{
		{0, 0, 1, 0, 1},
		{1, 2, 0, 2, 2},
		{2, 1, 2, 1, 0},
	})
	// (2,0)<->(2,1) yields a row of four 0s; (2,1)<->(2,2) only three 2s.
	move, ok := FindBestMove(m)
	require.True(t, ok)
	assert.Equal(t, C(2, 0), move.A)
	assert.Equal(t, C(2, 1), move.B)
	assert.Equal(t, 4, move.Match.Size())
	assert.Equal(t, TileType(0), move.Match.Type)
}

// bruteBestSize tries every ordered neighbour pair and returns the largest
// match size any single swap yields.
func bruteBestSize(m Matrix) int {
	best := 0
	for y := range m.Height() {
		for x := range m.Width() {
			for _, d := range []Coord{C(1, 0), C(0, 1), C(-1, 0), C(0, -1)} {
				b := C(x+d.X, y+d.Y)
				if !m.InBounds(b) {
					continue
				}
				if match, ok := FindBestMatch(m.Swapped(C(x, y), b)); ok {
					best = max(best, match.Size())
				}
			}
		}
	}
	return best
}

func TestFindBestMoveExhaustive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := range 200 {
		w, h := 3+rng.Intn(6), 3+rng.Intn(6)
		m := randomMatrix(rng, w, h, 4+rng.Intn(3))

		want := bruteBestSize(m)
		move, ok := FindBestMove(m)
		assert.Equal(t, want > 0, ok, "case %d", i)
		assert.Equal(t, want > 0, HasMove(m), "case %d", i)
		if !ok {
			assert.Empty(t, FindMoves(m))
			continue
		}
		assert.Equal(t, want, move.Match.Size(), "case %d:\n%s", i, m)
		assert.True(t, move.A.Adjacent(move.B))
		assert.True(t, move.A.Less(move.B))

		swapped := m.Swapped(move.A, move.B)
		for _, c := range move.Match.Cells {
			assert.Equal(t, move.Match.Type, swapped.At(c))
		}

		moves := FindMoves(m)
		require.NotEmpty(t, moves)
		first := moves[0]
		for _, mv := range moves {
			if mv.Match.Size() == want {
				first = mv
				break
			}
		}
		assert.Equal(t, first.A, move.A, "ties keep the earliest swap")
		assert.Equal(t, first.B, move.B)
	}
}

func TestFindMovesDeterministic(t *testing.T) {
	m := randomMatrix(rand.New(rand.NewSource(3)), 8, 8, 5)
	assert.Equal(t, FindMoves(m), FindMoves(m))
}
