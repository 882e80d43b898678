package decision_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cluedo-engine/internal/clients/decision"
	"github.com/KirkDiggler/cluedo-engine/internal/engine/board"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/pkg/random"
	"github.com/KirkDiggler/cluedo-engine/internal/testutils"
)

type HeuristicTestSuite struct {
	suite.Suite
	board     *board.Board
	heuristic *decision.Heuristic
	ctx       context.Context
}

func TestHeuristicSuite(t *testing.T) {
	suite.Run(t, new(HeuristicTestSuite))
}

func (s *HeuristicTestSuite) SetupTest() {
	s.board = board.Default()
	s.heuristic = decision.NewHeuristic(s.board, random.NewSeededRoller(99))
	s.ctx = context.Background()
}

func option(dest entities.Position, distance int) entities.MoveOption {
	return entities.MoveOption{
		Destination: dest,
		Path:        make([]entities.Position, distance+1),
		Distance:    distance,
	}
}

func (s *HeuristicTestSuite) TestWaitsWithoutMoves() {
	testCases := []struct {
		name  string
		input *decision.DecideInput
	}{
		{"nil input", nil},
		{"no moves", &decision.DecideInput{}},
		{"only staying put", &decision.DecideInput{PossibleMoves: []entities.MoveOption{option(testutils.Pos(0, 17), 0)}}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			d, err := s.heuristic.Decide(s.ctx, tc.input)
			s.Require().NoError(err)
			s.Equal(decision.ActionWait, d.Action)
			s.False(d.IsMove())
			s.Equal(decision.SourceHeuristic, d.Source)
		})
	}
}

func (s *HeuristicTestSuite) TestPrefersRooms() {
	input := &decision.DecideInput{
		PossibleMoves: []entities.MoveOption{
			option(testutils.Pos(4, 7), 3),
			option(testutils.Pos(4, 5), 5),
			option(testutils.Pos(4, 6), 4),
		},
	}

	for i := 0; i < 10; i++ {
		d, err := s.heuristic.Decide(s.ctx, input)
		s.Require().NoError(err)
		s.Require().True(d.IsMove())
		s.Equal(testutils.Pos(4, 5), *d.Target, "the only room cell wins")
		s.Len(d.Path, 6)
	}
}

func (s *HeuristicTestSuite) TestNeverStaysInPlace() {
	input := &decision.DecideInput{
		PossibleMoves: []entities.MoveOption{
			option(testutils.Pos(4, 5), 0),
			option(testutils.Pos(4, 7), 2),
		},
	}

	for i := 0; i < 10; i++ {
		d, err := s.heuristic.Decide(s.ctx, input)
		s.Require().NoError(err)
		s.Require().True(d.IsMove())
		s.Equal(testutils.Pos(4, 7), *d.Target, "the room cell underfoot is not a move")
	}
}

func (s *HeuristicTestSuite) TestDriftsTowardsCentre() {
	var moves []entities.MoveOption
	for x := 0; x <= 5; x++ {
		moves = append(moves, option(testutils.Pos(x, 17), x))
	}
	best := []entities.Position{testutils.Pos(5, 17), testutils.Pos(4, 17), testutils.Pos(3, 17)}

	for i := 0; i < 20; i++ {
		d, err := s.heuristic.Decide(s.ctx, &decision.DecideInput{PossibleMoves: moves})
		s.Require().NoError(err)
		s.Require().True(d.IsMove())
		s.Contains(best, *d.Target)
	}
}

func (s *HeuristicTestSuite) TestRollerFailurePicksFirstCandidate() {
	h := decision.NewHeuristic(s.board, &testutils.ScriptedRoller{Err: fmt.Errorf("broken")})
	moves := []entities.MoveOption{
		option(testutils.Pos(2, 2), 6),
		option(testutils.Pos(3, 3), 6),
	}

	d, err := h.Decide(s.ctx, &decision.DecideInput{PossibleMoves: moves})
	s.Require().NoError(err)
	s.Equal(testutils.Pos(2, 2), *d.Target)
}

func (s *HeuristicTestSuite) TestCheck() {
	moves := []entities.MoveOption{
		{Destination: testutils.Pos(1, 17), Path: []entities.Position{testutils.Pos(0, 17), testutils.Pos(1, 17)}, Distance: 1},
	}

	checked, err := decision.Check(decision.Move(testutils.Pos(1, 17), nil, "go"), moves)
	s.Require().NoError(err)
	s.Equal(moves[0].Path, checked.Path)

	_, err = decision.Check(decision.Move(testutils.Pos(9, 9), nil, "teleport"), moves)
	s.Error(err)

	_, err = decision.Check(&decision.Decision{Action: "dance"}, moves)
	s.Error(err)

	_, err = decision.Check(&decision.Decision{Action: decision.ActionMove}, moves)
	s.Error(err)

	_, err = decision.Check(nil, moves)
	s.Error(err)

	waited, err := decision.Check(decision.Wait("tired"), moves)
	s.Require().NoError(err)
	s.Equal(decision.ActionWait, waited.Action)
}
