package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cluedo-engine/internal/engine/movement"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/pkg/random"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Draw the board with every character on their starting cell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := loadBoard(cfg)
		if err != nil {
			return err
		}

		tokens := make(map[entities.Position]*entities.Character)
		var roster []*entities.Character
		for _, spec := range b.Characters() {
			c := &entities.Character{ID: spec.ID, Name: spec.Name, Color: spec.Color, Position: spec.Start}
			tokens[spec.Start] = c
			roster = append(roster, c)
		}

		out := cmd.OutOrStdout()
		renderBoard(out, b, tokens, nil)
		_, _ = fmt.Fprintln(out)
		renderLegend(out, roster)
		_, _ = fmt.Fprintf(out, "\nRooms: %v\n", b.RoomNames())
		return nil
	},
}

var pathCmd = &cobra.Command{
	Use:   "path FROM TO [BUDGET]",
	Short: "Find the shortest path between two cells, e.g. path 0,17 4,20 7",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		to, err := parsePosition(args[1])
		if err != nil {
			return err
		}

		b, err := loadBoard(cfg)
		if err != nil {
			return err
		}
		seed, err := random.NewSeed()
		if err != nil {
			return err
		}
		mover, err := movement.New(&movement.Config{Grid: b, DiceRoller: random.NewSeededRoller(seed)})
		if err != nil {
			return err
		}

		input := &movement.AttemptMoveInput{
			Character:   &entities.Character{Position: from},
			Destination: to,
		}
		if len(args) == 3 {
			budget, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("bad budget %q: %w", args[2], err)
			}
			input.Budget = &budget
		}

		outcome, err := mover.AttemptMove(input)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if outcome.Dice != nil {
			_, _ = fmt.Fprintf(out, "Rolled %d + %d = %d\n", outcome.Dice.Die1, outcome.Dice.Die2, outcome.Dice.Total)
		}
		if outcome.Reason == movement.ReasonNoPathFound {
			_, _ = fmt.Fprintln(out, colorDenied.Sprint(outcome.Message))
			return nil
		}

		marks := make(map[entities.Position]bool, len(outcome.Path))
		for _, p := range outcome.Path {
			marks[p] = true
		}
		renderBoard(out, b, nil, marks)

		if outcome.Success {
			_, _ = fmt.Fprintf(out, "Distance %d, %d moves left\n", outcome.Distance, outcome.MovesRemaining)
		} else {
			_, _ = fmt.Fprintln(out, colorDenied.Sprint(outcome.Message))
		}
		return nil
	},
}

var reachCmd = &cobra.Command{
	Use:   "reach FROM BUDGET",
	Short: "Show every cell reachable from a cell within a budget, e.g. reach 0,17 7",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		budget, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad budget %q: %w", args[1], err)
		}

		b, err := loadBoard(cfg)
		if err != nil {
			return err
		}
		mover, err := movement.New(&movement.Config{Grid: b, DiceRoller: random.NewSeededRoller(1)})
		if err != nil {
			return err
		}

		options := mover.ReachableFrom(from, budget)
		marks := make(map[entities.Position]bool, len(options))
		rooms := make(map[string]bool)
		for _, option := range options {
			marks[option.Destination] = true
			if room, ok := b.RoomAt(option.Destination); ok {
				rooms[room] = true
			}
		}

		out := cmd.OutOrStdout()
		renderBoard(out, b, nil, marks)
		_, _ = fmt.Fprintf(out, "%d cells reachable", len(options))
		for _, room := range b.RoomNames() {
			if rooms[room] {
				_, _ = fmt.Fprintf(out, ", %s", room)
			}
		}
		_, _ = fmt.Fprintln(out)
		return nil
	},
}
