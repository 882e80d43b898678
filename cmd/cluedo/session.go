package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/cluedo-engine/internal/clients/decision"
	"github.com/KirkDiggler/cluedo-engine/internal/config"
	"github.com/KirkDiggler/cluedo-engine/internal/engine/board"
	"github.com/KirkDiggler/cluedo-engine/internal/orchestrators/game"
	"github.com/KirkDiggler/cluedo-engine/internal/pkg/idgen"
	"github.com/KirkDiggler/cluedo-engine/internal/pkg/random"
	"github.com/KirkDiggler/cluedo-engine/internal/redis"
	gamesnapshot "github.com/KirkDiggler/cluedo-engine/internal/repositories/game_snapshot"
)

// session bundles an orchestrator with the resources it holds open
type session struct {
	board   *board.Board
	game    *game.Orchestrator
	store   gamesnapshot.Repository
	seed    int64
	closers []io.Closer
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			slog.Warn("Failed to release resource", "error", err)
		}
	}
}

func loadBoard(cfg *config.Config) (*board.Board, error) {
	if cfg.BoardFile == "" {
		return board.Default(), nil
	}
	return board.LoadFile(cfg.BoardFile)
}

func newSession(ctx context.Context, cfg *config.Config) (*session, error) {
	b, err := loadBoard(cfg)
	if err != nil {
		return nil, err
	}

	s := &session{board: b, seed: cfg.Seed}
	if s.seed == 0 {
		if s.seed, err = random.NewSeed(); err != nil {
			return nil, err
		}
	}

	provider, err := s.openProvider(ctx, cfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	if s.store, err = s.openStore(ctx, cfg); err != nil {
		s.Close()
		return nil, err
	}

	bus := events.NewBus()
	bus.SubscribeFunc(game.EventAccusationMade, 0, logEvent)
	bus.SubscribeFunc(game.EventGameLoaded, 0, logEvent)

	s.game, err = game.New(&game.Config{
		Board:           b,
		DiceRoller:      random.NewSeededRoller(s.seed),
		IDGenerator:     idgen.NewUUID("game"),
		Provider:        provider,
		DecisionTimeout: cfg.DecisionTimeout,
		EventBus:        bus,
		Snapshots:       s.store,
	})
	if err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

func (s *session) openProvider(ctx context.Context, cfg *config.Config) (decision.Provider, error) {
	switch cfg.DecisionProvider {
	case config.ProviderHTTP:
		return decision.NewHTTPProvider(&decision.HTTPConfig{
			BaseURL: cfg.DecisionURL,
			Token:   cfg.DecisionToken,
		})
	case config.ProviderGemini:
		provider, err := decision.NewGeminiProvider(ctx, &decision.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
			Board:  s.board,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, provider)
		return provider, nil
	default:
		// nil leaves every decision to the local heuristic
		return nil, nil
	}
}

func (s *session) openStore(ctx context.Context, cfg *config.Config) (gamesnapshot.Repository, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client)
		if err := redis.Ping(ctx, client); err != nil {
			return nil, err
		}
		return gamesnapshot.NewRedis(&gamesnapshot.RedisConfig{
			Client: client,
			TTL:    cfg.SnapshotTTL,
		})
	case config.StoreSQLite:
		repo, err := gamesnapshot.NewSQLite(ctx, &gamesnapshot.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, repo)
		return repo, nil
	default:
		return nil, nil
	}
}

func (s *session) requireStore() error {
	if s.store == nil {
		return fmt.Errorf("no snapshot store configured; set --store or CLUEDO_STORE")
	}
	return nil
}

func logEvent(_ context.Context, e events.Event) error {
	slog.Debug("Game event",
		"type", e.Type(),
		"source", e.Source().GetID(),
	)
	return nil
}
