// Package main is the cluedo command-line tool: it renders boards, answers
// movement queries and plays whole games between AI characters.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cluedo-engine/internal/config"
)

var (
	cfg *config.Config

	boardFile string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "cluedo",
	Short: "Cluedo rules engine",
	Long: `Plays Cluedo on a grid board. Settings come from CLUEDO_* environment
variables; flags override them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("board") {
			loaded.BoardFile = boardFile
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		applyPlayFlags(cmd, loaded)

		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLevel(cfg.LogLevel),
		})))
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&boardFile, "board", "", "board YAML file (default: classic board)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(reachCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(savesCmd)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
