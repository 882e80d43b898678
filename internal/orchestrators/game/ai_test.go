package game_test

import (
	"context"
	"slices"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/cluedo-engine/internal/clients/decision"
	decisionmock "github.com/KirkDiggler/cluedo-engine/internal/clients/decision/mock"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
	"github.com/KirkDiggler/cluedo-engine/internal/orchestrators/game"
	"github.com/KirkDiggler/cluedo-engine/internal/pkg/random"
)

func (s *OrchestratorTestSuite) TestPlayAITurnSeesRedactedState() {
	provider := decisionmock.NewMockProvider(s.ctrl)
	s.orchestrator = s.newOrchestrator(&game.Config{Provider: provider})
	s.loadFixedDeal()

	scarlettNow := s.orchestrator.State().Characters[scarlett]
	moves := s.orchestrator.Movement().ReachableCells(scarlettNow, 5)
	s.Require().NotEmpty(moves)
	target := moves[len(moves)-1]

	provider.EXPECT().
		Decide(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *decision.DecideInput) (*decision.Decision, error) {
			s.Equal(scarlett, input.Character.ID)
			s.Equal(5, input.Dice.Total)
			s.True(input.State.Solution.IsZero())
			s.Len(input.State.Characters[scarlett].Hand, 3)
			s.Empty(input.State.Characters[mustard].Hand)
			return decision.Move(target.Destination, nil, "towards the conservatory"), nil
		})

	got, err := s.orchestrator.PlayAITurn(s.ctx, &game.PlayAITurnInput{
		CharacterID:   scarlett,
		Dice:          entities.DiceResult{Die1: 2, Die2: 3, Total: 5},
		PossibleMoves: moves,
	})
	s.Require().NoError(err)
	s.True(got.IsMove())
	s.Equal(target.Destination, *got.Target)
	s.Equal(target.Path, got.Path)
	s.Equal("towards the conservatory", got.Reasoning)
}

func (s *OrchestratorTestSuite) TestPlayAITurnErrors() {
	s.loadFixedDeal()

	_, err := s.orchestrator.PlayAITurn(s.ctx, &game.PlayAITurnInput{CharacterID: mustard})
	s.True(errors.IsFailedPrecondition(err), "the human seat is not AI controlled")

	_, err = s.orchestrator.PlayAITurn(s.ctx, &game.PlayAITurnInput{CharacterID: "nobody"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.PlayAITurn(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestPlayAITurnWithoutProvider() {
	s.loadFixedDeal()

	got, err := s.orchestrator.PlayAITurn(s.ctx, &game.PlayAITurnInput{
		CharacterID: green,
		Dice:        entities.DiceResult{Die1: 1, Die2: 1, Total: 2},
	})
	s.Require().NoError(err)
	s.False(got.IsMove(), "no moves means waiting")
	s.Equal(decision.SourceHeuristic, got.Source)
}

func (s *OrchestratorTestSuite) TestAutoPlayTurnFallsBackOnProviderError() {
	provider := decisionmock.NewMockProvider(s.ctrl)
	s.orchestrator = s.newOrchestrator(&game.Config{Provider: provider})
	s.loadFixedDeal()

	// the human seat is played locally, so only scarlett reaches the provider
	provider.EXPECT().
		Decide(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("model is down")).
		Times(1)

	first, err := s.orchestrator.AutoPlayTurn(s.ctx)
	s.Require().NoError(err)
	s.Equal(mustard, first.CharacterID)
	s.Require().False(first.GameOver)
	s.Equal(scarlett, first.NextTurn)

	second, err := s.orchestrator.AutoPlayTurn(s.ctx)
	s.Require().NoError(err)
	s.Equal(scarlett, second.CharacterID)
	s.Require().NotNil(second.Decision)
	s.Equal(decision.SourceHeuristic, second.Decision.Source)
	s.Equal(green, second.NextTurn)
}

func (s *OrchestratorTestSuite) TestAutoPlayTurnSkipsEliminated() {
	s.loadFixedDeal()

	_, err := s.orchestrator.MakeAccusation(s.ctx, &game.MakeAccusationInput{
		CharacterID: mustard,
		Claim:       entities.Claim{Location: "Kitchen", Character: "Mrs. White", Weapon: "Dagger"},
	})
	s.Require().NoError(err)

	report, err := s.orchestrator.AutoPlayTurn(s.ctx)
	s.Require().NoError(err)
	s.True(report.Skipped)
	s.Nil(report.Decision)
	s.Equal(scarlett, report.NextTurn)
}

func (s *OrchestratorTestSuite) TestAutoPlayTurnKeepsGameConsistent() {
	deck := s.board.Deck()

	for seed := int64(1); seed <= 5; seed++ {
		o := s.newOrchestrator(&game.Config{DiceRoller: random.NewSeededRoller(seed)})
		_, err := o.InitializeGame(s.ctx, nil)
		s.Require().NoError(err)

		for turn := 0; turn < 120 && o.Phase() != game.PhaseGameOver; turn++ {
			before := o.State()
			report, err := o.AutoPlayTurn(s.ctx)
			s.Require().NoError(err, "seed %d turn %d", seed, turn)
			after := o.State()

			s.Equal(before.CurrentTurn, report.CharacterID)
			s.Equal(after.TurnOrder[after.CurrentTurnIndex], after.CurrentTurn)

			if report.Move != nil {
				s.True(s.board.IsWalkable(report.Move.To))
				s.LessOrEqual(len(report.Decision.Path)-1, report.Dice.Total)
				s.Equal(report.Move.To, after.Characters[report.CharacterID].Position)
			}
			if report.Hypothesis != nil {
				s.Equal(entities.Card(report.Move.Room), report.Hypothesis.Location)
			}
			if report.Accusation != nil {
				s.True(report.Accusation.Correct, "an undisprovable claim is the solution")
				s.Equal(report.CharacterID, after.Winner)
			}

			var cards []entities.Card
			for _, c := range after.Characters {
				cards = append(cards, c.Hand...)
			}
			cards = append(cards, after.Solution.Location, after.Solution.Character, after.Solution.Weapon)
			s.ElementsMatch(deck.All(), cards)
			s.Equal(before.Solution, after.Solution)
		}
	}
}

func (s *OrchestratorTestSuite) TestAutoPlayAfterGameOver() {
	s.loadFixedDeal()

	_, err := s.orchestrator.MakeAccusation(s.ctx, &game.MakeAccusationInput{
		CharacterID: plum,
		Claim:       entities.Claim{Location: "Hall", Character: "Professor Plum", Weapon: "Rope"},
	})
	s.Require().NoError(err)

	_, err = s.orchestrator.AutoPlayTurn(s.ctx)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestAutoPlayRecordsHumanKnowledge() {
	s.loadFixedDeal()

	for i := 0; i < 60 && s.orchestrator.Phase() != game.PhaseGameOver; i++ {
		_, err := s.orchestrator.AutoPlayTurn(s.ctx)
		s.Require().NoError(err)
	}

	state := s.orchestrator.State()
	var shown []entities.Card
	for _, record := range state.Hypotheses {
		if record.CharacterID == mustard && record.Refuted() {
			shown = append(shown, record.CardShown)
		}
	}
	for _, card := range shown {
		s.True(slices.Contains(s.orchestrator.EliminatedCards(), card), "player should remember %s", card)
	}
}
