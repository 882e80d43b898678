package game

import (
	"context"
	"log/slog"
	"slices"

	"github.com/KirkDiggler/cluedo-engine/internal/engine/board"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
	"github.com/KirkDiggler/cluedo-engine/internal/pkg/random"
)

// InitializeGame starts a new game, replacing any game in progress. The
// solution takes one card of each kind, the remaining cards are shuffled
// and dealt in turn order with any remainder going to the last character,
// and the human player moves first.
func (o *Orchestrator) InitializeGame(ctx context.Context, input *InitializeGameInput) (*InitializeGameOutput, error) {
	if input == nil {
		input = &InitializeGameInput{}
	}

	roster := o.board.Characters()
	deck := o.board.Deck()

	playerIdx := slices.IndexFunc(roster, func(c board.CharacterSpec) bool {
		return c.ID == input.PlayerCharacterID
	})
	if input.PlayerCharacterID != "" && playerIdx < 0 {
		return nil, errors.NotFoundf("character %s not found", input.PlayerCharacterID).
			WithMeta("character_id", input.PlayerCharacterID)
	}

	solution, err := o.drawSolution(deck)
	if err != nil {
		return nil, err
	}

	if playerIdx < 0 {
		playerIdx, err = random.Index(o.roller, len(roster))
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to choose player character")
		}
	}

	remaining := make([]entities.Card, 0, deck.Size()-3)
	for _, card := range deck.All() {
		if !solution.Contains(card) {
			remaining = append(remaining, card)
		}
	}
	if err := random.Shuffle(o.roller, remaining); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to shuffle cards")
	}

	hands := deal(remaining, len(roster))

	state := &entities.GameState{
		GameID:            o.idGen.Generate(),
		Solution:          solution,
		Characters:        make(map[string]*entities.Character, len(roster)),
		PlayerCharacterID: roster[playerIdx].ID,
		TurnOrder:         make([]string, len(roster)),
		CurrentTurnIndex:  playerIdx,
		CurrentTurn:       roster[playerIdx].ID,
		History:           []entities.HistoryEntry{},
		Hypotheses:        []entities.HypothesisRecord{},
		CreatedAt:         o.clock.Now(),
	}
	for i, spec := range roster {
		isPlayer := i == playerIdx
		state.TurnOrder[i] = spec.ID
		state.Characters[spec.ID] = &entities.Character{
			ID:              spec.ID,
			Name:            spec.Name,
			Color:           spec.Color,
			Position:        spec.Start,
			IsPlayer:        isPlayer,
			IsAI:            !isPlayer,
			Hand:            hands[i],
			EliminatedCards: []entities.Card{},
		}
	}

	o.state = state
	o.rebuildSeats()

	slog.Info("Game initialized",
		"game_id", state.GameID,
		"player_character_id", state.PlayerCharacterID,
		"characters", len(roster),
		"cards_dealt", len(remaining),
	)

	o.publish(ctx, EventGameInitialized, o.gameEntity(), state.Player())

	return &InitializeGameOutput{
		PlayerCharacter: state.Player().Clone(),
		State:           state.Clone(),
	}, nil
}

func (o *Orchestrator) drawSolution(deck entities.Deck) (entities.Claim, error) {
	var solution entities.Claim
	var err error

	if solution.Location, err = random.Pick(o.roller, deck.Rooms); err != nil {
		return entities.Claim{}, errors.WrapWithCode(err, errors.CodeInternal, "failed to choose solution room")
	}
	if solution.Weapon, err = random.Pick(o.roller, deck.Weapons); err != nil {
		return entities.Claim{}, errors.WrapWithCode(err, errors.CodeInternal, "failed to choose solution weapon")
	}
	if solution.Character, err = random.Pick(o.roller, deck.Characters); err != nil {
		return entities.Claim{}, errors.WrapWithCode(err, errors.CodeInternal, "failed to choose solution culprit")
	}

	return solution, nil
}

// deal splits cards into n hands of len(cards)/n, the last hand taking the
// remainder
func deal(cards []entities.Card, n int) [][]entities.Card {
	hands := make([][]entities.Card, n)
	per := len(cards) / n
	for i := range hands {
		start := i * per
		end := start + per
		if i == n-1 {
			end = len(cards)
		}
		hands[i] = slices.Clone(cards[start:end])
		if hands[i] == nil {
			hands[i] = []entities.Card{}
		}
	}
	return hands
}
