// Package pathfind finds shortest 4-directional paths across a grid
package pathfind

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/cluedo-engine/internal/entities"
)

// Grid is the part of the board the search needs
type Grid interface {
	IsWalkable(p entities.Position) bool
}

// PathFinder runs A* with a Manhattan heuristic. Every step costs 1, so the
// heuristic is admissible and consistent and the first time the goal is
// popped its path is optimal.
type PathFinder struct {
	grid Grid
}

// New creates a path finder over grid
func New(grid Grid) *PathFinder {
	return &PathFinder{grid: grid}
}

type node struct {
	pos entities.Position
	g   int
	f   int
	seq int
}

// FindPath returns a shortest path from start to goal, both ends included.
// ok is false when either end is off the grid or not walkable, or when the
// goal cannot be reached. start == goal yields the single-cell path.
func (pf *PathFinder) FindPath(start, goal entities.Position) ([]entities.Position, bool) {
	if !pf.grid.IsWalkable(start) || !pf.grid.IsWalkable(goal) {
		return nil, false
	}
	if start == goal {
		return []entities.Position{start}, true
	}

	open := heap.New[node](func(a, b node) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		if a.g != b.g {
			return a.g > b.g
		}
		return a.seq < b.seq
	})
	closed := mapset.New[entities.Position]()
	gScore := map[entities.Position]int{start: 0}
	parents := make(map[entities.Position]entities.Position)

	seq := 0
	open.Push(node{pos: start, f: entities.ManhattanDistance(start, goal)})

	for open.Size() > 0 {
		current, _ := open.Pop()
		if closed.Has(current.pos) {
			// stale entry superseded by a cheaper push
			continue
		}
		if current.pos == goal {
			return BuildPath(parents, start, goal), true
		}
		closed.Put(current.pos)

		for _, next := range current.pos.Neighbors() {
			if closed.Has(next) || !pf.grid.IsWalkable(next) {
				continue
			}
			g := current.g + 1
			if known, seen := gScore[next]; seen && g >= known {
				continue
			}
			gScore[next] = g
			parents[next] = current.pos
			seq++
			open.Push(node{
				pos: next,
				g:   g,
				f:   g + entities.ManhattanDistance(next, goal),
				seq: seq,
			})
		}
	}

	return nil, false
}

// BuildPath walks parent links back from goal to start and returns the path
// in travel order. It returns nil when the links do not lead back to start.
func BuildPath(parents map[entities.Position]entities.Position, start, goal entities.Position) []entities.Position {
	var reversed []entities.Position
	for at := goal; at != start; {
		if len(reversed) > len(parents) {
			return nil
		}
		reversed = append(reversed, at)
		prev, ok := parents[at]
		if !ok {
			return nil
		}
		at = prev
	}
	reversed = append(reversed, start)

	path := make([]entities.Position, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}

// Distance is the number of steps a path takes
func Distance(path []entities.Position) int {
	if len(path) == 0 {
		return 0
	}
	return len(path) - 1
}
