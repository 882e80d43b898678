// Package movement turns dice rolls into legal moves: it checks a requested
// destination against the movement budget and lists every cell a character
// can reach.
package movement

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/zyedidia/generic/queue"

	"github.com/KirkDiggler/cluedo-engine/internal/engine/pathfind"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
)

// DiceSides is the size of each of the two movement dice
const DiceSides = 6

// FailureReason explains why a move was refused
type FailureReason string

// Failure reasons
const (
	ReasonNone               FailureReason = ""
	ReasonNoPathFound        FailureReason = "no_path_found"
	ReasonInsufficientBudget FailureReason = "insufficient_budget"
)

// Config holds the dependencies for the movement controller
type Config struct {
	Grid       pathfind.Grid
	DiceRoller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Grid == nil {
		vb.RequiredField("Grid")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}

	return vb.Build()
}

// Controller validates and enumerates moves. It never changes a
// character's position; applying a move is the game orchestrator's job.
type Controller struct {
	grid   pathfind.Grid
	finder *pathfind.PathFinder
	roller dice.Roller
}

// New creates a movement controller
func New(cfg *Config) (*Controller, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Controller{
		grid:   cfg.Grid,
		finder: pathfind.New(cfg.Grid),
		roller: cfg.DiceRoller,
	}, nil
}

// RollDice rolls the two movement dice
func (c *Controller) RollDice() (entities.DiceResult, error) {
	rolls, err := c.roller.RollN(2, DiceSides)
	if err != nil {
		return entities.DiceResult{}, errors.Wrap(err, "failed to roll movement dice")
	}
	if len(rolls) != 2 {
		return entities.DiceResult{}, errors.Internalf("expected 2 dice, roller returned %d", len(rolls))
	}

	return entities.DiceResult{
		Die1:  rolls[0],
		Die2:  rolls[1],
		Total: rolls[0] + rolls[1],
	}, nil
}

// FindPath exposes the underlying shortest-path search
func (c *Controller) FindPath(from, to entities.Position) ([]entities.Position, bool) {
	return c.finder.FindPath(from, to)
}

// CanMove reports whether path exists and fits within budget
func CanMove(path []entities.Position, budget int) bool {
	return len(path) > 0 && pathfind.Distance(path) <= budget
}

// AttemptMoveInput describes a requested move. A nil Budget means the dice
// are rolled to decide it.
type AttemptMoveInput struct {
	Character   *entities.Character
	Destination entities.Position
	Budget      *int
}

// MoveOutcome is the verdict on a requested move. Dice is set when the
// budget came from a roll made by AttemptMove.
type MoveOutcome struct {
	Success        bool
	Reason         FailureReason
	Message        string
	From           entities.Position
	To             entities.Position
	Path           []entities.Position
	Distance       int
	Budget         int
	MovesRemaining int
	Dice           *entities.DiceResult
}

// AttemptMove checks whether the character can reach the destination.
// Refusals are reported in the outcome; only a failing roller is an error.
func (c *Controller) AttemptMove(input *AttemptMoveInput) (*MoveOutcome, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	outcome := &MoveOutcome{
		From: input.Character.Position,
		To:   input.Destination,
	}

	if input.Budget != nil {
		outcome.Budget = *input.Budget
	} else {
		roll, err := c.RollDice()
		if err != nil {
			return nil, err
		}
		outcome.Budget = roll.Total
		outcome.Dice = &roll
	}

	path, ok := c.finder.FindPath(outcome.From, outcome.To)
	if !ok {
		outcome.Reason = ReasonNoPathFound
		outcome.Message = fmt.Sprintf("no path from %s to %s", outcome.From, outcome.To)
		return outcome, nil
	}

	outcome.Path = path
	outcome.Distance = pathfind.Distance(path)

	if !CanMove(path, outcome.Budget) {
		outcome.Reason = ReasonInsufficientBudget
		outcome.Message = fmt.Sprintf("not enough movement: distance %d, budget %d", outcome.Distance, outcome.Budget)
		return outcome, nil
	}

	outcome.Success = true
	outcome.MovesRemaining = outcome.Budget - outcome.Distance
	return outcome, nil
}

// ReachableCells lists every cell the character can reach within budget,
// its own cell included at distance 0. Cells are in breadth-first order so
// distances never decrease along the slice.
func (c *Controller) ReachableCells(character *entities.Character, budget int) []entities.MoveOption {
	if character == nil {
		return nil
	}
	return c.ReachableFrom(character.Position, budget)
}

// ReachableFrom is ReachableCells for a bare position. A single breadth-first
// pass capped at budget gives the same set as running a shortest-path search
// to every cell in the surrounding box.
func (c *Controller) ReachableFrom(start entities.Position, budget int) []entities.MoveOption {
	if budget < 0 || !c.grid.IsWalkable(start) {
		return nil
	}

	dist := map[entities.Position]int{start: 0}
	parents := make(map[entities.Position]entities.Position)
	order := []entities.Position{start}

	frontier := queue.New[entities.Position]()
	frontier.Enqueue(start)

	for !frontier.Empty() {
		current := frontier.Dequeue()
		if dist[current] == budget {
			continue
		}
		for _, next := range current.Neighbors() {
			if _, seen := dist[next]; seen || !c.grid.IsWalkable(next) {
				continue
			}
			dist[next] = dist[current] + 1
			parents[next] = current
			order = append(order, next)
			frontier.Enqueue(next)
		}
	}

	options := make([]entities.MoveOption, len(order))
	for i, p := range order {
		options[i] = entities.MoveOption{
			Destination: p,
			Path:        pathfind.BuildPath(parents, start, p),
			Distance:    dist[p],
		}
	}
	return options
}
