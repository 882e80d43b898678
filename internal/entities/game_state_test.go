package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cluedo-engine/internal/entities"
)

type GameStateTestSuite struct {
	suite.Suite
	state *entities.GameState
}

func TestGameStateSuite(t *testing.T) {
	suite.Run(t, new(GameStateTestSuite))
}

func (s *GameStateTestSuite) SetupTest() {
	from := entities.Position{X: 0, Y: 17}
	to := entities.Position{X: 4, Y: 17}
	s.state = &entities.GameState{
		GameID:   "game_1",
		Solution: entities.Claim{Location: "Hall", Character: "Mrs. White", Weapon: "Rope"},
		Characters: map[string]*entities.Character{
			"a": {ID: "a", Name: "A", Hand: []entities.Card{"Kitchen"}, EliminatedCards: []entities.Card{"Dagger"}, IsPlayer: true},
			"b": {ID: "b", Name: "B", Hand: []entities.Card{"Dagger"}, IsAI: true},
			"c": {ID: "c", Name: "C", Hand: []entities.Card{"Library"}, IsAI: true},
		},
		PlayerCharacterID: "a",
		TurnOrder:         []string{"a", "b", "c"},
		CurrentTurn:       "a",
		History: []entities.HistoryEntry{
			{CharacterID: "a", Action: entities.ActionMove, From: &from, To: &to},
			{CharacterID: "a", Action: entities.ActionHypothesis, RefutedBy: "b", CardShown: "Dagger"},
		},
		Hypotheses: []entities.HypothesisRecord{
			{CharacterID: "a", RefutedBy: "b", CardShown: "Dagger"},
		},
	}
}

func (s *GameStateTestSuite) TestCloneIsDeep() {
	clone := s.state.Clone()

	clone.Characters["a"].Hand[0] = "Hall"
	clone.History[0].To.X = 9
	clone.TurnOrder[0] = "z"

	s.Equal(entities.Card("Kitchen"), s.state.Characters["a"].Hand[0])
	s.Equal(4, s.state.History[0].To.X)
	s.Equal("a", s.state.TurnOrder[0])
}

func (s *GameStateTestSuite) TestRedactedHidesOtherHands() {
	view := s.state.Redacted("c")

	s.True(view.Solution.IsZero())
	s.Nil(view.Characters["a"].Hand)
	s.Nil(view.Characters["a"].EliminatedCards)
	s.Nil(view.Characters["b"].Hand)
	s.Equal([]entities.Card{"Library"}, view.Characters["c"].Hand)
	s.Empty(view.History[1].CardShown)
	s.Empty(view.Hypotheses[0].CardShown)

	// the original is untouched
	s.Equal(entities.Card("Dagger"), s.state.History[1].CardShown)
	s.False(s.state.Solution.IsZero())
}

func (s *GameStateTestSuite) TestRedactedKeepsOwnExchanges() {
	view := s.state.Redacted("b")

	s.Equal(entities.Card("Dagger"), view.History[1].CardShown)
	s.Equal(entities.Card("Dagger"), view.Hypotheses[0].CardShown)
}

func (s *GameStateTestSuite) TestOrderedCharacters() {
	ordered := s.state.OrderedCharacters()
	s.Require().Len(ordered, 3)
	s.Equal("a", ordered[0].ID)
	s.Equal("c", ordered[2].ID)
	s.Equal("a", s.state.Current().ID)
	s.Equal("a", s.state.Player().ID)
}

func (s *GameStateTestSuite) TestCharacterHelpers() {
	c := s.state.Characters["b"]

	card, ok := c.FirstMatchingCard(entities.Claim{Location: "Hall", Character: "A", Weapon: "Dagger"})
	s.True(ok)
	s.Equal(entities.Card("Dagger"), card)

	s.True(c.LearnCard("Rope"))
	s.False(c.LearnCard("Rope"))
	s.Equal("character", c.GetType())
}
