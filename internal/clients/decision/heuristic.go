package decision

import (
	"context"
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/pkg/random"
)

// SourceHeuristic marks decisions made locally
const SourceHeuristic = "heuristic"

// centerCandidates is how many of the moves closest to the centre the
// heuristic chooses between
const centerCandidates = 3

// RoomLocator is the part of the board the heuristic needs
type RoomLocator interface {
	IsInRoom(p entities.Position) bool
	Center() entities.Position
}

// Heuristic is the local decision maker. It heads for any reachable room
// cell, otherwise drifts towards the centre of the board.
type Heuristic struct {
	rooms  RoomLocator
	roller dice.Roller
}

var _ Provider = (*Heuristic)(nil)

// NewHeuristic creates the local decision maker. roller should be the
// session's shared random source.
func NewHeuristic(rooms RoomLocator, roller dice.Roller) *Heuristic {
	return &Heuristic{rooms: rooms, roller: roller}
}

// Decide never returns an error. Options at distance 0 are ignored, so the
// character only stays put by waiting.
func (h *Heuristic) Decide(_ context.Context, input *DecideInput) (*Decision, error) {
	var moves []entities.MoveOption
	if input != nil {
		for _, option := range input.PossibleMoves {
			if option.Distance > 0 {
				moves = append(moves, option)
			}
		}
	}

	if len(moves) == 0 {
		return h.tag(Wait("no move available")), nil
	}

	var roomMoves []entities.MoveOption
	for _, option := range moves {
		if h.rooms.IsInRoom(option.Destination) {
			roomMoves = append(roomMoves, option)
		}
	}

	if len(roomMoves) > 0 {
		chosen := h.pick(roomMoves)
		return h.tag(Move(chosen.Destination, chosen.Path, "heading into a room to investigate")), nil
	}

	center := h.rooms.Center()
	byCenter := slices.Clone(moves)
	slices.SortStableFunc(byCenter, func(a, b entities.MoveOption) int {
		return entities.ManhattanDistance(a.Destination, center) - entities.ManhattanDistance(b.Destination, center)
	})

	chosen := h.pick(byCenter[:min(centerCandidates, len(byCenter))])
	return h.tag(Move(chosen.Destination, chosen.Path, "moving towards the centre of the board")), nil
}

// pick falls back to the first option if the roller fails
func (h *Heuristic) pick(options []entities.MoveOption) entities.MoveOption {
	chosen, err := random.Pick(h.roller, options)
	if err != nil {
		return options[0]
	}
	return chosen
}

func (h *Heuristic) tag(d *Decision) *Decision {
	d.Source = SourceHeuristic
	return d
}
