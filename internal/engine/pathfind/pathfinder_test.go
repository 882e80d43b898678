package pathfind_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cluedo-engine/internal/engine/board"
	"github.com/KirkDiggler/cluedo-engine/internal/engine/pathfind"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/testutils"
)

type PathFinderTestSuite struct {
	suite.Suite
	board  *board.Board
	finder *pathfind.PathFinder
}

func TestPathFinderSuite(t *testing.T) {
	suite.Run(t, new(PathFinderTestSuite))
}

func (s *PathFinderTestSuite) SetupTest() {
	s.board = board.Default()
	s.finder = pathfind.New(s.board)
}

func (s *PathFinderTestSuite) TestStartEqualsGoal() {
	start := testutils.Pos(0, 17)

	path, ok := s.finder.FindPath(start, start)

	s.Require().True(ok)
	s.Equal([]entities.Position{start}, path)
	s.Equal(0, pathfind.Distance(path))
}

func (s *PathFinderTestSuite) TestWallGoalHasNoPath() {
	path, ok := s.finder.FindPath(testutils.Pos(0, 17), testutils.Pos(0, 0))
	s.False(ok)
	s.Nil(path)
}

func (s *PathFinderTestSuite) TestInvalidEndpoints() {
	testCases := []struct {
		name       string
		start, end entities.Position
	}{
		{"start off board", testutils.Pos(-1, 17), testutils.Pos(4, 17)},
		{"goal off board", testutils.Pos(0, 17), testutils.Pos(24, 17)},
		{"start on wall", testutils.Pos(0, 0), testutils.Pos(0, 17)},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, ok := s.finder.FindPath(tc.start, tc.end)
			s.False(ok)
		})
	}
}

func (s *PathFinderTestSuite) TestStraightCorridor() {
	path, ok := s.finder.FindPath(testutils.Pos(0, 17), testutils.Pos(7, 17))

	s.Require().True(ok)
	s.Equal(7, pathfind.Distance(path))
	testutils.AssertValidPath(s.T(), s.board, path, testutils.Pos(0, 17), testutils.Pos(7, 17))
}

func (s *PathFinderTestSuite) TestIntoRoomThroughDoor() {
	// the kitchen is only reachable through its door at (4,6)
	path, ok := s.finder.FindPath(testutils.Pos(0, 8), testutils.Pos(2, 2))

	s.Require().True(ok)
	testutils.AssertValidPath(s.T(), s.board, path, testutils.Pos(0, 8), testutils.Pos(2, 2))
	s.Contains(path, testutils.Pos(4, 6))
	s.Equal(testutils.GridDistances(s.board, testutils.Pos(0, 8))[testutils.Pos(2, 2)], pathfind.Distance(path))
}

func (s *PathFinderTestSuite) TestUnreachablePocket() {
	b := testutils.BoardFromRows(s.T(),
		"..#..",
		"..#..",
		"###..",
	)
	finder := pathfind.New(b)

	_, ok := finder.FindPath(testutils.Pos(0, 0), testutils.Pos(4, 0))
	s.False(ok)

	path, ok := finder.FindPath(testutils.Pos(3, 0), testutils.Pos(4, 2))
	s.True(ok)
	s.Equal(3, pathfind.Distance(path))
}

func (s *PathFinderTestSuite) TestBuildPath() {
	start := testutils.Pos(2, 2)
	parents := map[entities.Position]entities.Position{
		testutils.Pos(3, 2): start,
		testutils.Pos(3, 3): testutils.Pos(3, 2),
	}

	s.Equal([]entities.Position{start, testutils.Pos(3, 2), testutils.Pos(3, 3)},
		pathfind.BuildPath(parents, start, testutils.Pos(3, 3)))
	s.Equal([]entities.Position{start}, pathfind.BuildPath(parents, start, start))

	s.Nil(pathfind.BuildPath(parents, start, testutils.Pos(5, 5)), "goal was never reached")
	s.Nil(pathfind.BuildPath(parents, testutils.Pos(1, 1), testutils.Pos(3, 3)), "links lead to another start")

	loop := map[entities.Position]entities.Position{
		testutils.Pos(0, 1): testutils.Pos(1, 1),
		testutils.Pos(1, 1): testutils.Pos(0, 1),
	}
	s.Nil(pathfind.BuildPath(loop, start, testutils.Pos(0, 1)))
}

func (s *PathFinderTestSuite) TestOptimalOnDefaultBoard() {
	starts := []entities.Position{
		testutils.Pos(0, 17), testutils.Pos(23, 8), testutils.Pos(14, 0), testutils.Pos(12, 12),
	}
	for _, start := range starts {
		distances := testutils.GridDistances(s.board, start)
		for goal, want := range distances {
			path, ok := s.finder.FindPath(start, goal)
			s.Require().Truef(ok, "%s -> %s", start, goal)
			s.Equalf(want, pathfind.Distance(path), "%s -> %s", start, goal)
		}
	}
}

func (s *PathFinderTestSuite) TestOptimalOnRandomBoards() {
	rng := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 25; round++ {
		b := testutils.BoardFromRows(s.T(), randomRows(rng, 9, 7)...)
		finder := pathfind.New(b)

		for y := 0; y < b.Height(); y++ {
			for x := 0; x < b.Width(); x++ {
				start := testutils.Pos(x, y)
				if !b.IsWalkable(start) {
					continue
				}
				distances := testutils.GridDistances(b, start)
				for gy := 0; gy < b.Height(); gy++ {
					for gx := 0; gx < b.Width(); gx++ {
						goal := testutils.Pos(gx, gy)
						path, ok := finder.FindPath(start, goal)
						want, reachable := distances[goal]
						s.Require().Equalf(reachable, ok, "round %d %s -> %s", round, start, goal)
						if !ok {
							continue
						}
						s.Require().Equal(want, pathfind.Distance(path))
						testutils.AssertValidPath(s.T(), b, path, start, goal)
					}
				}
			}
		}
	}
}

// randomRows draws a board that is roughly a third walls. The first two
// cells are kept open so the fixture always has its two characters.
func randomRows(rng *rand.Rand, width, height int) []string {
	rows := make([]string, height)
	for y := range rows {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			switch {
			case y == 0 && x < 2:
				sb.WriteByte('.')
			case rng.IntN(3) == 0:
				sb.WriteByte('#')
			case rng.IntN(8) == 0:
				sb.WriteByte('A')
			default:
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}
