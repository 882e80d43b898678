package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cluedo-engine/internal/config"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/orchestrators/game"
	gamesnapshot "github.com/KirkDiggler/cluedo-engine/internal/repositories/game_snapshot"
)

var (
	seedFlag     int64
	providerFlag string
	storeFlag    string
	playerFlag   string
	maxTurns     int
	showBoard    bool
	savesLimit   int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a whole game, every seat driven by the AI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		s, err := newSession(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		out, err := s.game.InitializeGame(ctx, &game.InitializeGameInput{PlayerCharacterID: playerFlag})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(w, "%s (seed %d)\n", colorHeader.Sprintf("Game %s", out.State.GameID), s.seed)
		_, _ = fmt.Fprintf(w, "You are %s holding %v\n\n", out.PlayerCharacter.Name, out.PlayerCharacter.Hand)

		return runGame(ctx, w, s)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume GAME_ID",
	Short: "Continue a saved game from the snapshot store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		s, err := newSession(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.requireStore(); err != nil {
			return err
		}
		if err := s.game.LoadFromStore(ctx, args[0]); err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(w, "%s, %s to play\n\n",
			colorHeader.Sprintf("Resumed %s", args[0]), s.game.CurrentCharacter().Name)

		return runGame(ctx, w, s)
	},
}

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved games, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		s, err := newSession(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.requireStore(); err != nil {
			return err
		}

		listed, err := s.store.List(ctx, gamesnapshot.ListInput{Limit: savesLimit})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(listed.Snapshots) == 0 {
			_, _ = fmt.Fprintln(w, "No saved games")
			return nil
		}
		for _, snap := range listed.Snapshots {
			status := "in progress, " + snap.CurrentTurn + " to play"
			if snap.GameOver {
				status = "finished"
			}
			_, _ = fmt.Fprintf(w, "%s  %s  player %s  %s\n",
				snap.GameID, snap.SavedAt.Format("2006-01-02 15:04"), snap.PlayerCharacterID, status)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, resumeCmd, savesCmd} {
		cmd.Flags().StringVar(&storeFlag, "store", "", "snapshot store: none, redis, sqlite")
	}
	for _, cmd := range []*cobra.Command{playCmd, resumeCmd} {
		cmd.Flags().Int64Var(&seedFlag, "seed", 0, "random seed (0 picks one)")
		cmd.Flags().StringVar(&providerFlag, "provider", "", "decision provider: heuristic, http, gemini")
		cmd.Flags().IntVar(&maxTurns, "max-turns", 300, "stop after this many turns")
		cmd.Flags().BoolVar(&showBoard, "show-board", false, "draw the board after every turn")
	}
	playCmd.Flags().StringVar(&playerFlag, "player", "", "character ID for the human seat (default: random)")
	savesCmd.Flags().IntVar(&savesLimit, "limit", 20, "most saves to list (0 for all)")
}

// applyPlayFlags copies flags set on the command line over the loaded
// environment configuration
func applyPlayFlags(cmd *cobra.Command, c *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("seed") {
		c.Seed = seedFlag
	}
	if changed("provider") {
		c.DecisionProvider = providerFlag
	}
	if changed("store") {
		c.Store = storeFlag
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runGame plays turns until the game ends, the turn limit is hit or the
// context is cancelled. With a store configured the game is saved after
// every turn so it can be resumed.
func runGame(ctx context.Context, w io.Writer, s *session) error {
	for turn := 0; turn < maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			_, _ = fmt.Fprintln(w, "Interrupted")
			return nil
		}

		report, err := s.game.AutoPlayTurn(ctx)
		if err != nil {
			return err
		}

		state := s.game.State()
		renderReport(w, state, report)
		if showBoard {
			renderState(w, s, state)
		}

		if s.store != nil {
			if _, err := s.game.SaveToStore(ctx); err != nil {
				slog.Warn("Failed to save game", "game_id", state.GameID, "error", err)
			}
		}

		if report.GameOver {
			printOutcome(w, state)
			return nil
		}
	}

	state := s.game.State()
	_, _ = fmt.Fprintf(w, "\nStopped after %d turns without a winner.\n", maxTurns)
	if s.store != nil {
		_, _ = fmt.Fprintf(w, "Resume with: cluedo resume %s\n", state.GameID)
	}
	return nil
}

func renderState(w io.Writer, s *session, state *entities.GameState) {
	tokens := make(map[entities.Position]*entities.Character)
	for _, c := range state.OrderedCharacters() {
		tokens[c.Position] = c
	}
	renderBoard(w, s.board, tokens, nil)
	_, _ = fmt.Fprintln(w)
}

func printOutcome(w io.Writer, state *entities.GameState) {
	_, _ = fmt.Fprintln(w)
	if winner, ok := state.Character(state.Winner); ok {
		_, _ = fmt.Fprintln(w, colorHeader.Sprintf("%s wins.", winner.Name))
	} else {
		_, _ = fmt.Fprintln(w, colorDenied.Sprint("Everyone was eliminated."))
	}
	_, _ = fmt.Fprintf(w, "It was %s in the %s with the %s.\n",
		state.Solution.Character, state.Solution.Location, state.Solution.Weapon)
	renderLegend(w, state.OrderedCharacters())
}
