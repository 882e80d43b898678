package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
	gamesnapshot "github.com/KirkDiggler/cluedo-engine/internal/repositories/game_snapshot"
)

// SaveGame serializes the complete game state, solution included
func (o *Orchestrator) SaveGame() (string, error) {
	if err := o.requireState(); err != nil {
		return "", err
	}

	data, err := json.Marshal(o.state)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal game state")
	}
	return string(data), nil
}

// LoadGame replaces the current game with a saved one. The snapshot must
// describe a consistent game on this board; otherwise it is rejected with
// DataLoss and the current game is left untouched.
func (o *Orchestrator) LoadGame(ctx context.Context, data string) error {
	var state entities.GameState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode saved game")
	}

	if err := o.checkState(&state); err != nil {
		return errors.WrapWithCode(err, errors.CodeDataLoss, "saved game is inconsistent")
	}

	if state.History == nil {
		state.History = []entities.HistoryEntry{}
	}
	if state.Hypotheses == nil {
		state.Hypotheses = []entities.HypothesisRecord{}
	}

	o.state = &state
	o.rebuildSeats()

	slog.Info("Game loaded",
		"game_id", state.GameID,
		"current_turn", state.CurrentTurn,
		"history", len(state.History),
		"game_over", state.GameOver,
	)

	o.publish(ctx, EventGameLoaded, o.gameEntity(), nil)

	return nil
}

// checkState verifies the invariants a running game maintains
func (o *Orchestrator) checkState(state *entities.GameState) error {
	vb := errors.NewValidationBuilder()

	if state.GameID == "" {
		vb.RequiredField("GameID")
	}
	if len(state.TurnOrder) == 0 {
		vb.RequiredField("TurnOrder")
		return vb.Build()
	}

	seen := make(map[string]bool, len(state.TurnOrder))
	for _, id := range state.TurnOrder {
		c, ok := state.Characters[id]
		switch {
		case seen[id]:
			vb.Fieldf("TurnOrder", "%s appears twice", id)
		case !ok || c == nil:
			vb.Fieldf("TurnOrder", "%s has no character", id)
		case c.ID != id:
			vb.Fieldf("Characters", "%s is stored under %s", c.ID, id)
		case !o.board.IsWalkable(c.Position):
			vb.Fieldf("Characters", "%s stands on unwalkable cell %s", id, c.Position)
		case c.IsPlayer != (id == state.PlayerCharacterID) || c.IsAI == c.IsPlayer:
			vb.Fieldf("Characters", "%s has player flags that disagree with the player character", id)
		}
		seen[id] = true
	}
	if len(state.Characters) != len(state.TurnOrder) {
		vb.Field("Characters", "must match the turn order")
	}

	if state.CurrentTurnIndex < 0 || state.CurrentTurnIndex >= len(state.TurnOrder) {
		vb.Fieldf("CurrentTurnIndex", "%d is out of range", state.CurrentTurnIndex)
	} else if state.TurnOrder[state.CurrentTurnIndex] != state.CurrentTurn {
		vb.Field("CurrentTurn", "does not match the turn order")
	}

	if player, ok := state.Characters[state.PlayerCharacterID]; !ok || player == nil {
		vb.Field("PlayerCharacterID", "has no character")
	}
	if state.Winner != "" {
		if _, ok := state.Characters[state.Winner]; !ok {
			vb.Fieldf("Winner", "%s has no character", state.Winner)
		}
		if !state.GameOver {
			vb.Field("Winner", "set while the game is running")
		}
	}

	o.checkSolution(state.Solution, vb)

	if problem := o.checkPartition(state); problem != "" {
		vb.Field("Cards", problem)
	}

	return vb.Build()
}

// checkSolution verifies each solution slot holds a card of its own kind
func (o *Orchestrator) checkSolution(solution entities.Claim, vb *errors.ValidationBuilder) {
	deck := o.board.Deck()
	slots := []struct {
		field string
		card  entities.Card
		kind  entities.CardKind
	}{
		{"Solution.Location", solution.Location, entities.CardKindRoom},
		{"Solution.Character", solution.Character, entities.CardKindCharacter},
		{"Solution.Weapon", solution.Weapon, entities.CardKindWeapon},
	}
	for _, slot := range slots {
		if kind, ok := deck.KindOf(slot.card); !ok || kind != slot.kind {
			vb.Fieldf(slot.field, "%q is not a %s card", slot.card, slot.kind)
		}
	}
}

// checkPartition verifies the solution and the hands hold every card of
// the deck exactly once. It describes the first problem found.
func (o *Orchestrator) checkPartition(state *entities.GameState) string {
	deck := o.board.Deck()
	counts := make(map[entities.Card]int, deck.Size())
	for _, card := range deck.All() {
		counts[card] = 0
	}

	cards := []entities.Card{state.Solution.Location, state.Solution.Character, state.Solution.Weapon}
	for _, c := range state.Characters {
		if c != nil {
			cards = append(cards, c.Hand...)
		}
	}

	for _, card := range cards {
		n, ok := counts[card]
		if !ok {
			return fmt.Sprintf("unknown card %q", card)
		}
		if n > 0 {
			return fmt.Sprintf("card %q is dealt twice", card)
		}
		counts[card] = 1
	}
	if len(cards) != deck.Size() {
		return fmt.Sprintf("%d of %d cards accounted for", len(cards), deck.Size())
	}
	return ""
}

// SaveToStore writes the current game to the snapshot repository
func (o *Orchestrator) SaveToStore(ctx context.Context) (*gamesnapshot.Snapshot, error) {
	if o.snapshots == nil {
		return nil, errors.FailedPrecondition("no snapshot repository configured")
	}

	data, err := o.SaveGame()
	if err != nil {
		return nil, err
	}

	out, err := o.snapshots.Save(ctx, gamesnapshot.SaveInput{
		Snapshot: &gamesnapshot.Snapshot{
			GameID:            o.state.GameID,
			Data:              data,
			PlayerCharacterID: o.state.PlayerCharacterID,
			CurrentTurn:       o.state.CurrentTurn,
			GameOver:          o.state.GameOver,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save game")
	}

	return out.Snapshot, nil
}

// LoadFromStore replaces the current game with the one saved under gameID
func (o *Orchestrator) LoadFromStore(ctx context.Context, gameID string) error {
	if o.snapshots == nil {
		return errors.FailedPrecondition("no snapshot repository configured")
	}
	if gameID == "" {
		return errors.InvalidArgument("game ID is required")
	}

	out, err := o.snapshots.Get(ctx, gamesnapshot.GetInput{GameID: gameID})
	if err != nil {
		return errors.Wrapf(err, "failed to load game %s", gameID)
	}

	return o.LoadGame(ctx, out.Snapshot.Data)
}
