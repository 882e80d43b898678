package game

import (
	"context"
	"log/slog"
	"slices"

	"github.com/KirkDiggler/cluedo-engine/internal/clients/decision"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
	"github.com/KirkDiggler/cluedo-engine/internal/pkg/random"
)

// PlayAITurn asks the decision provider what an AI character should do with
// its roll. The provider only sees the state as that character may see it.
// A failing or misbehaving provider is replaced by the local heuristic, so
// a decision is always returned for an AI character.
func (o *Orchestrator) PlayAITurn(ctx context.Context, input *PlayAITurnInput) (*decision.Decision, error) {
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
	if !c.IsAI {
		return nil, errors.FailedPreconditionf("%s is not AI controlled", c.Name).
			WithMeta("character_id", c.ID)
	}

	return o.decider.Decide(ctx, &decision.DecideInput{
		Character:     c.Clone(),
		Dice:          input.Dice,
		PossibleMoves: input.PossibleMoves,
		State:         o.state.Redacted(c.ID),
	})
}

// AutoPlayTurn plays the current character's whole turn: roll, pick a move,
// move, make a hypothesis when the move ends in a room, accuse when that
// hypothesis cannot be disproved, then pass the turn. The human seat is
// played by the local heuristic.
func (o *Orchestrator) AutoPlayTurn(ctx context.Context) (*TurnReport, error) {
	if err := o.requireActive(); err != nil {
		return nil, err
	}

	actor := o.state.Current()
	report := &TurnReport{CharacterID: actor.ID}

	if actor.Eliminated {
		report.Skipped = true
		return o.finishTurn(ctx, report)
	}

	roll, err := o.movement.RollDice()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to roll dice")
	}
	report.Dice = roll

	moves := o.movement.ReachableCells(actor, roll.Total)

	if actor.IsAI {
		report.Decision, err = o.PlayAITurn(ctx, &PlayAITurnInput{
			CharacterID:   actor.ID,
			Dice:          roll,
			PossibleMoves: moves,
		})
	} else {
		report.Decision, err = o.heuristic.Decide(ctx, &decision.DecideInput{
			Character:     actor.Clone(),
			Dice:          roll,
			PossibleMoves: moves,
			State:         o.state.Redacted(actor.ID),
		})
	}
	if err != nil {
		return nil, err
	}

	if report.Decision.IsMove() {
		report.Move, err = o.MoveCharacter(ctx, &MoveCharacterInput{
			CharacterID: actor.ID,
			Position:    *report.Decision.Target,
		})
		if err != nil {
			return nil, err
		}
	}

	if report.Move != nil && report.Move.InRoom() {
		if err := o.investigate(ctx, actor, report); err != nil {
			return nil, err
		}
	}

	return o.finishTurn(ctx, report)
}

// investigate makes a hypothesis in the room the actor just entered and
// accuses with the same claim if nobody can disprove it and none of its
// cards are in the actor's own hand.
func (o *Orchestrator) investigate(ctx context.Context, actor *entities.Character, report *TurnReport) error {
	claim, err := o.chooseClaim(actor, report.Move.Room)
	if err != nil {
		return err
	}
	report.Hypothesis = &claim

	report.Refutation, err = o.MakeHypothesis(ctx, &MakeHypothesisInput{
		CharacterID: actor.ID,
		Claim:       claim,
	})
	if err != nil {
		return err
	}

	if report.Refutation.Refuted || slices.ContainsFunc(actor.Hand, claim.Contains) {
		return nil
	}

	report.Accusation, err = o.MakeAccusation(ctx, &MakeAccusationInput{
		CharacterID: actor.ID,
		Claim:       claim,
	})
	return err
}

// chooseClaim names the room and a suspect and weapon the actor has not
// ruled out. Once a category is exhausted any card of it will do.
func (o *Orchestrator) chooseClaim(actor *entities.Character, room string) (entities.Claim, error) {
	known := o.knownCards(actor)
	deck := o.board.Deck()

	suspect, err := random.Pick(o.roller, unknownOr(deck.Characters, known))
	if err != nil {
		return entities.Claim{}, errors.WrapWithCode(err, errors.CodeInternal, "failed to choose suspect")
	}
	weapon, err := random.Pick(o.roller, unknownOr(deck.Weapons, known))
	if err != nil {
		return entities.Claim{}, errors.WrapWithCode(err, errors.CodeInternal, "failed to choose weapon")
	}

	return entities.Claim{
		Location:  entities.Card(room),
		Character: suspect,
		Weapon:    weapon,
	}, nil
}

// knownCards are the cards the actor holds or has been shown
func (o *Orchestrator) knownCards(actor *entities.Character) []entities.Card {
	known := slices.Concat(actor.Hand, actor.EliminatedCards)
	for _, record := range o.state.Hypotheses {
		if record.CharacterID == actor.ID && record.Refuted() {
			known = append(known, record.CardShown)
		}
	}
	return known
}

func unknownOr(cards, known []entities.Card) []entities.Card {
	var out []entities.Card
	for _, card := range cards {
		if !slices.Contains(known, card) {
			out = append(out, card)
		}
	}
	if len(out) == 0 {
		return cards
	}
	return out
}

func (o *Orchestrator) finishTurn(ctx context.Context, report *TurnReport) (*TurnReport, error) {
	if !o.state.GameOver {
		if _, err := o.NextTurn(ctx); err != nil {
			return nil, err
		}
	}

	report.GameOver = o.state.GameOver
	report.NextTurn = o.state.CurrentTurn

	slog.Debug("Turn played",
		"game_id", o.state.GameID,
		"character_id", report.CharacterID,
		"skipped", report.Skipped,
		"dice", report.Dice.Total,
		"game_over", report.GameOver,
	)

	return report, nil
}
