// Package decision chooses what an AI-controlled character does on its turn.
//
// A Provider proposes a Decision for a character given its dice roll and the
// moves it can legally make. Remote providers (an HTTP service or Gemini)
// may fail or answer nonsense; WithFallback wraps one with the local
// Heuristic so that resolving a decision never fails.
package decision

//go:generate mockgen -destination=mock/mock_provider.go -package=decisionmock github.com/KirkDiggler/cluedo-engine/internal/clients/decision Provider

import (
	"context"

	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
)

// Action is the kind of decision
type Action string

// Actions
const (
	ActionMove Action = "move"
	ActionWait Action = "wait"
)

// Decision is either a move to Target along Path, or a wait. Source names
// the provider that produced it.
type Decision struct {
	Action    Action              `json:"action" yaml:"action"`
	Target    *entities.Position  `json:"target,omitempty" yaml:"target,omitempty"`
	Path      []entities.Position `json:"path,omitempty" yaml:"path,omitempty"`
	Reasoning string              `json:"reasoning" yaml:"reasoning"`
	Source    string              `json:"-" yaml:"-"`
}

// Move builds a move decision
func Move(target entities.Position, path []entities.Position, reasoning string) *Decision {
	return &Decision{
		Action:    ActionMove,
		Target:    &target,
		Path:      path,
		Reasoning: reasoning,
	}
}

// Wait builds a wait decision
func Wait(reasoning string) *Decision {
	return &Decision{
		Action:    ActionWait,
		Reasoning: reasoning,
	}
}

// IsMove reports whether the decision moves the character
func (d *Decision) IsMove() bool {
	return d != nil && d.Action == ActionMove && d.Target != nil
}

// DecideInput is everything a provider is told about the turn. State is
// already redacted for Character.
type DecideInput struct {
	Character     *entities.Character
	Dice          entities.DiceResult
	PossibleMoves []entities.MoveOption
	State         *entities.GameState
}

// Provider proposes a decision for an AI turn
type Provider interface {
	Decide(ctx context.Context, input *DecideInput) (*Decision, error)
}

// Check validates a proposed decision against the legal moves. A move must
// target one of them; its path is replaced by the legal shortest path so a
// provider cannot smuggle in an illegal route.
func Check(d *Decision, moves []entities.MoveOption) (*Decision, error) {
	if d == nil {
		return nil, errors.InvalidArgument("provider returned no decision")
	}

	switch d.Action {
	case ActionWait:
		out := Wait(d.Reasoning)
		out.Source = d.Source
		return out, nil
	case ActionMove:
		if d.Target == nil {
			return nil, errors.InvalidArgument("move decision has no target")
		}
		for _, option := range moves {
			if option.Destination == *d.Target {
				out := Move(option.Destination, option.Path, d.Reasoning)
				out.Source = d.Source
				return out, nil
			}
		}
		return nil, errors.InvalidArgumentf("target %s is not a legal move", *d.Target).
			WithMeta("target", d.Target.String())
	default:
		return nil, errors.InvalidArgumentf("unknown action %q", d.Action)
	}
}
