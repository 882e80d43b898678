// Package game owns the authoritative state of one Cluedo session: the
// hidden solution, the hands, whose turn it is, and the history of moves,
// hypotheses and accusations.
//
// An Orchestrator is created per session and is not safe for concurrent
// use. Movement legality is the movement controller's concern; the
// orchestrator commits whatever move it is given.
package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/cluedo-engine/internal/clients/decision"
	"github.com/KirkDiggler/cluedo-engine/internal/engine/board"
	"github.com/KirkDiggler/cluedo-engine/internal/engine/movement"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
	"github.com/KirkDiggler/cluedo-engine/internal/pkg/clock"
	"github.com/KirkDiggler/cluedo-engine/internal/pkg/idgen"
	gamesnapshot "github.com/KirkDiggler/cluedo-engine/internal/repositories/game_snapshot"
)

// Config holds the dependencies for the game orchestrator
type Config struct {
	Board *board.Board

	// DiceRoller is the session's single random source. It drives dice,
	// the solution, the player's seat, the deal and heuristic picks.
	DiceRoller dice.Roller

	IDGenerator idgen.Generator

	// Provider decides AI moves. Nil means every decision is made by the
	// local heuristic.
	Provider decision.Provider

	// DecisionTimeout bounds a single Provider call
	DecisionTimeout time.Duration

	// Clock defaults to the system clock
	Clock clock.Clock

	// EventBus receives game events when set
	EventBus events.EventBus

	// Snapshots enables SaveToStore and LoadFromStore when set
	Snapshots gamesnapshot.Repository

	// SkipEliminated makes NextTurn pass over eliminated characters
	SkipEliminated bool
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Board == nil {
		vb.RequiredField("Board")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.DecisionTimeout < 0 {
		vb.InvalidField("DecisionTimeout", "must not be negative")
	}

	return vb.Build()
}

// Orchestrator runs one game session
type Orchestrator struct {
	board          *board.Board
	movement       *movement.Controller
	roller         dice.Roller
	idGen          idgen.Generator
	clock          clock.Clock
	bus            events.EventBus
	snapshots      gamesnapshot.Repository
	heuristic      *decision.Heuristic
	decider        decision.Provider
	skipEliminated bool

	state *entities.GameState

	// seats maps character ID to its index in the turn order
	seats map[string]int
}

// New creates a game orchestrator. The game itself starts with
// InitializeGame or LoadGame.
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	mover, err := movement.New(&movement.Config{
		Grid:       cfg.Board,
		DiceRoller: cfg.DiceRoller,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create movement controller")
	}

	heuristic := decision.NewHeuristic(cfg.Board, cfg.DiceRoller)
	decider, err := decision.WithFallback(&decision.FallbackConfig{
		Primary:  cfg.Provider,
		Fallback: heuristic,
		Timeout:  cfg.DecisionTimeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create decision provider")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &Orchestrator{
		board:          cfg.Board,
		movement:       mover,
		roller:         cfg.DiceRoller,
		idGen:          cfg.IDGenerator,
		clock:          c,
		bus:            cfg.EventBus,
		snapshots:      cfg.Snapshots,
		heuristic:      heuristic,
		decider:        decider,
		skipEliminated: cfg.SkipEliminated,
	}, nil
}

// Board returns the board the session is played on
func (o *Orchestrator) Board() *board.Board {
	return o.board
}

// Movement returns the controller callers use to roll dice and list moves
func (o *Orchestrator) Movement() *movement.Controller {
	return o.movement
}

// Phase reports where the session is in its lifecycle
func (o *Orchestrator) Phase() Phase {
	switch {
	case o.state == nil:
		return PhaseSetup
	case o.state.GameOver:
		return PhaseGameOver
	case o.IsPlayerTurn():
		return PhasePlayerTurn
	default:
		return PhaseAITurn
	}
}

// IsPlayerTurn reports whether the human player is to act
func (o *Orchestrator) IsPlayerTurn() bool {
	return o.state != nil && o.state.CurrentTurn == o.state.PlayerCharacterID
}

// CurrentCharacter returns a copy of the character whose turn it is, or nil
// before the game starts
func (o *Orchestrator) CurrentCharacter() *entities.Character {
	if o.state == nil {
		return nil
	}
	return o.state.Current().Clone()
}

// PlayerCharacter returns a copy of the human's character, or nil before
// the game starts
func (o *Orchestrator) PlayerCharacter() *entities.Character {
	if o.state == nil {
		return nil
	}
	return o.state.Player().Clone()
}

// PlayerCards returns the human player's hand
func (o *Orchestrator) PlayerCards() []entities.Card {
	if player := o.PlayerCharacter(); player != nil {
		return player.Hand
	}
	return nil
}

// EliminatedCards returns the cards the human player has been shown
func (o *Orchestrator) EliminatedCards() []entities.Card {
	if player := o.PlayerCharacter(); player != nil {
		return player.EliminatedCards
	}
	return nil
}

// State returns a deep copy of the full game state, solution included
func (o *Orchestrator) State() *entities.GameState {
	return o.state.Clone()
}

func (o *Orchestrator) requireState() error {
	if o.state == nil {
		return errors.FailedPrecondition("game has not been initialized")
	}
	return nil
}

func (o *Orchestrator) requireActive() error {
	if err := o.requireState(); err != nil {
		return err
	}
	if o.state.GameOver {
		return errors.FailedPrecondition("game is over").
			WithMeta("game_id", o.state.GameID)
	}
	return nil
}

func (o *Orchestrator) character(id string) (*entities.Character, error) {
	c, ok := o.state.Character(id)
	if !ok {
		return nil, errors.NotFoundf("character %s not found", id).
			WithMeta("character_id", id)
	}
	return c, nil
}

func (o *Orchestrator) rebuildSeats() {
	o.seats = make(map[string]int, len(o.state.TurnOrder))
	for i, id := range o.state.TurnOrder {
		o.seats[id] = i
	}
}

// gameEntity identifies the session itself as an event source
type gameEntity struct {
	id string
}

func (e *gameEntity) GetID() string   { return e.id }
func (e *gameEntity) GetType() string { return "game" }

func (o *Orchestrator) gameEntity() core.Entity {
	return &gameEntity{id: o.state.GameID}
}

// publish is best effort; a failing subscriber never fails a game action
func (o *Orchestrator) publish(ctx context.Context, eventType string, source, target core.Entity) {
	if o.bus == nil {
		return
	}

	if err := o.bus.Publish(ctx, events.NewGameEvent(eventType, source, target)); err != nil {
		slog.Warn("Failed to publish game event",
			"event_type", eventType,
			"game_id", o.state.GameID,
			"error", err,
		)
	}
}
