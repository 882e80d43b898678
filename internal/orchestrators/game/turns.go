package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
)

// NextTurn passes the turn to the next character in turn order and returns
// them. It returns nil without error once the game is over.
//
// Eliminated characters keep their turn unless SkipEliminated is set. With
// skipping on and nobody left to play, the game ends without a winner.
func (o *Orchestrator) NextTurn(ctx context.Context) (*entities.Character, error) {
	if err := o.requireState(); err != nil {
		return nil, err
	}
	if o.state.GameOver {
		return nil, nil
	}

	n := len(o.state.TurnOrder)
	next := -1
	for step := 1; step <= n; step++ {
		idx := (o.state.CurrentTurnIndex + step) % n
		if !o.skipEliminated || !o.state.Characters[o.state.TurnOrder[idx]].Eliminated {
			next = idx
			break
		}
	}

	if next < 0 {
		o.state.GameOver = true
		o.state.Winner = ""
		slog.Info("Every character is eliminated, game over",
			"game_id", o.state.GameID,
		)
		return nil, nil
	}

	o.state.CurrentTurnIndex = next
	o.state.CurrentTurn = o.state.TurnOrder[next]
	current := o.state.Current()

	slog.Debug("Turn advanced",
		"game_id", o.state.GameID,
		"current_turn", current.ID,
		"is_player", current.IsPlayer,
	)

	o.publish(ctx, EventTurnAdvanced, o.gameEntity(), current)

	return current.Clone(), nil
}

// MoveCharacter places a character on a new cell and records the move. The
// move is not checked against any dice budget; the cell only has to be
// walkable.
func (o *Orchestrator) MoveCharacter(ctx context.Context, input *MoveCharacterInput) (*MoveCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := o.requireState(); err != nil {
		return nil, err
	}

	c, err := o.character(input.CharacterID)
	if err != nil {
		return nil, err
	}
	if !o.board.IsWalkable(input.Position) {
		return nil, errors.OutOfRangef("position %s is not walkable", input.Position).
			WithMeta("position", input.Position.String())
	}

	out := o.relocate(c, input.Position, entities.ActionMove)

	o.publish(ctx, EventCharacterMoved, c, nil)

	return out, nil
}

// UseSecretPassage moves a character standing in a room with a secret
// passage to the room at the other end
func (o *Orchestrator) UseSecretPassage(ctx context.Context, input *UseSecretPassageInput) (*UseSecretPassageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := o.requireActive(); err != nil {
		return nil, err
	}

	c, err := o.character(input.CharacterID)
	if err != nil {
		return nil, err
	}

	room, ok := o.board.RoomAt(c.Position)
	if !ok {
		return nil, errors.FailedPreconditionf("%s is not in a room", c.Name).
			WithMeta("character_id", c.ID)
	}
	dest, ok := o.board.PassageDestination(room)
	if !ok {
		return nil, errors.FailedPreconditionf("the %s has no secret passage", room).
			WithMeta("room", room)
	}

	moved := o.relocate(c, dest, entities.ActionSecretPassage)

	o.publish(ctx, EventCharacterMoved, c, nil)

	return &UseSecretPassageOutput{From: moved.From, To: moved.To, Room: moved.Room}, nil
}

func (o *Orchestrator) relocate(c *entities.Character, to entities.Position, action entities.Action) *MoveCharacterOutput {
	from := c.Position
	c.Position = to
	room, _ := o.board.RoomAt(to)

	o.record(c, entities.HistoryEntry{
		Action: action,
		From:   &from,
		To:     &to,
		Room:   room,
	})

	slog.Debug("Character moved",
		"game_id", o.state.GameID,
		"character_id", c.ID,
		"action", action,
		"from", from.String(),
		"to", to.String(),
		"room", room,
	)

	return &MoveCharacterOutput{From: from, To: to, Room: room}
}

// MakeHypothesis asks the other characters, in turn order starting after
// the asker, to disprove the claim. The first one holding a named card shows
// the first such card in their hand. A human asker remembers the card.
func (o *Orchestrator) MakeHypothesis(ctx context.Context, input *MakeHypothesisInput) (*MakeHypothesisOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := o.requireActive(); err != nil {
		return nil, err
	}

	asker, err := o.character(input.CharacterID)
	if err != nil {
		return nil, err
	}
	if asker.Eliminated {
		return nil, errors.FailedPreconditionf("%s has been eliminated", asker.Name).
			WithMeta("character_id", asker.ID)
	}
	if err := o.validateClaim(input.Claim); err != nil {
		return nil, err
	}

	out := &MakeHypothesisOutput{}
	n := len(o.state.TurnOrder)
	seat := o.seats[asker.ID]
	for step := 1; step < n; step++ {
		other := o.state.Characters[o.state.TurnOrder[(seat+step)%n]]
		if card, ok := other.FirstMatchingCard(input.Claim); ok {
			out.Refuted = true
			out.RefutedBy = other.ID
			out.CardShown = card
			break
		}
	}

	if out.Refuted && asker.IsPlayer {
		asker.LearnCard(out.CardShown)
	}

	claim := input.Claim
	now := o.clock.Now()
	o.state.Hypotheses = append(o.state.Hypotheses, entities.HypothesisRecord{
		CharacterID: asker.ID,
		Claim:       claim,
		RefutedBy:   out.RefutedBy,
		CardShown:   out.CardShown,
		Timestamp:   now,
	})
	o.record(asker, entities.HistoryEntry{
		Action:    entities.ActionHypothesis,
		Claim:     &claim,
		RefutedBy: out.RefutedBy,
		CardShown: out.CardShown,
	})

	slog.Info("Hypothesis made",
		"game_id", o.state.GameID,
		"character_id", asker.ID,
		"refuted", out.Refuted,
		"refuted_by", out.RefutedBy,
	)

	var refuter core.Entity
	if out.Refuted {
		refuter = o.state.Characters[out.RefutedBy]
	}
	o.publish(ctx, EventHypothesisMade, asker, refuter)

	return out, nil
}

// MakeAccusation checks a final claim against the solution. A correct
// accusation wins the game; a wrong one eliminates the accuser, who is
// shown the solution.
func (o *Orchestrator) MakeAccusation(ctx context.Context, input *MakeAccusationInput) (*MakeAccusationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := o.requireActive(); err != nil {
		return nil, err
	}

	accuser, err := o.character(input.CharacterID)
	if err != nil {
		return nil, err
	}
	if accuser.Eliminated {
		return nil, errors.FailedPreconditionf("%s has been eliminated", accuser.Name).
			WithMeta("character_id", accuser.ID)
	}
	if err := o.validateClaim(input.Claim); err != nil {
		return nil, err
	}

	claim := input.Claim
	correct := claim == o.state.Solution
	o.record(accuser, entities.HistoryEntry{
		Action:  entities.ActionAccusation,
		Claim:   &claim,
		Correct: &correct,
	})

	var out *MakeAccusationOutput
	if correct {
		o.state.GameOver = true
		o.state.Winner = accuser.ID
		out = &MakeAccusationOutput{
			Correct: true,
			Message: fmt.Sprintf("%s solved it! It was %s in the %s with the %s.",
				accuser.Name, claim.Character, claim.Location, claim.Weapon),
		}
	} else {
		accuser.Eliminated = true
		solution := o.state.Solution
		out = &MakeAccusationOutput{
			Correct:  false,
			Message:  fmt.Sprintf("%s was wrong and is out of the game.", accuser.Name),
			Solution: &solution,
		}
		if o.everyoneEliminated() {
			o.state.GameOver = true
		}
	}

	slog.Info("Accusation made",
		"game_id", o.state.GameID,
		"character_id", accuser.ID,
		"correct", correct,
		"game_over", o.state.GameOver,
	)

	o.publish(ctx, EventAccusationMade, accuser, nil)

	return out, nil
}

func (o *Orchestrator) everyoneEliminated() bool {
	for _, c := range o.state.Characters {
		if !c.Eliminated {
			return false
		}
	}
	return true
}

// validateClaim checks each named card belongs to the right deck
func (o *Orchestrator) validateClaim(claim entities.Claim) error {
	deck := o.board.Deck()
	vb := errors.NewValidationBuilder()

	checks := []struct {
		field string
		card  entities.Card
		kind  entities.CardKind
	}{
		{"Location", claim.Location, entities.CardKindRoom},
		{"Character", claim.Character, entities.CardKindCharacter},
		{"Weapon", claim.Weapon, entities.CardKindWeapon},
	}
	for _, check := range checks {
		if check.card == "" {
			vb.RequiredField(check.field)
			continue
		}
		if kind, ok := deck.KindOf(check.card); !ok || kind != check.kind {
			vb.InvalidField(check.field, fmt.Sprintf("%q is not a %s card", check.card, check.kind))
		}
	}

	return vb.Build()
}

func (o *Orchestrator) record(c *entities.Character, entry entities.HistoryEntry) {
	entry.Turn = o.state.CurrentTurnIndex
	entry.CharacterID = c.ID
	entry.CharacterName = c.Name
	entry.Timestamp = o.clock.Now()
	o.state.History = append(o.state.History, entry)
}
