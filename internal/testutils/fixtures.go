package testutils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/cluedo-engine/internal/engine/board"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
)

// FixtureWeapon is the only weapon on boards built by BoardFromRows
const FixtureWeapon = "Knife"

// BoardFromRows builds a board from ASCII rows:
//
//	'.' open   '#' wall   'D' door   'A'..'I' room cells ("Room A".."Room I")
//
// Two characters, "ada" and "bo", start on the first two walkable cells in
// row-major order.
func BoardFromRows(t *testing.T, rows ...string) *board.Board {
	t.Helper()

	cfg := &board.Config{
		Rooms:   make(map[int]string),
		Weapons: []string{FixtureWeapon},
	}

	var starts []entities.Position
	for y, row := range rows {
		codes := make([]int, len(row))
		for x, ch := range row {
			switch {
			case ch == '.':
				codes[x] = board.CodeOpen
			case ch == '#':
				codes[x] = board.CodeWall
			case ch == 'D':
				codes[x] = board.CodeDoor
			case ch >= 'A' && ch <= 'I' && ch != 'D':
				code := int(ch-'A') + 3
				codes[x] = code
				cfg.Rooms[code] = fmt.Sprintf("Room %c", ch)
			default:
				require.FailNowf(t, "bad fixture", "unexpected cell %q at (%d,%d)", ch, x, y)
			}
			if codes[x] != board.CodeWall && len(starts) < 2 {
				starts = append(starts, entities.Position{X: x, Y: y})
			}
		}
		cfg.Grid = append(cfg.Grid, codes)
	}

	require.Len(t, starts, 2, "fixture needs at least two walkable cells")
	cfg.Characters = []board.CharacterSpec{
		{ID: "ada", Name: "Ada", Color: "#FF0000", Start: starts[0]},
		{ID: "bo", Name: "Bo", Color: "#0000FF", Start: starts[1]},
	}

	b, err := board.New(cfg)
	require.NoError(t, err)
	return b
}

// Pos is shorthand for entities.Position
func Pos(x, y int) entities.Position {
	return entities.Position{X: x, Y: y}
}

// GridDistances computes true 4-directional distances from start by plain
// breadth-first search. Tests use it as the reference answer.
func GridDistances(b *board.Board, start entities.Position) map[entities.Position]int {
	dist := map[entities.Position]int{}
	if !b.IsWalkable(start) {
		return dist
	}

	dist[start] = 0
	frontier := []entities.Position{start}
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		for _, next := range current.Neighbors() {
			if _, seen := dist[next]; seen || !b.IsWalkable(next) {
				continue
			}
			dist[next] = dist[current] + 1
			frontier = append(frontier, next)
		}
	}
	return dist
}

// AssertValidPath checks that path starts at from, ends at to and only takes
// single orthogonal steps across walkable cells.
func AssertValidPath(t *testing.T, b *board.Board, path []entities.Position, from, to entities.Position) {
	t.Helper()

	require.NotEmpty(t, path)
	require.Equal(t, from, path[0])
	require.Equal(t, to, path[len(path)-1])
	for i, p := range path {
		require.Truef(t, b.IsWalkable(p), "step %d at %s is not walkable", i, p)
		if i > 0 {
			require.Equalf(t, 1, entities.ManhattanDistance(path[i-1], p), "step %d jumps from %s to %s", i, path[i-1], p)
		}
	}
}
