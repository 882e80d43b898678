package game_test

import (
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
	"github.com/KirkDiggler/cluedo-engine/internal/orchestrators/game"
	gamesnapshot "github.com/KirkDiggler/cluedo-engine/internal/repositories/game_snapshot"
	"github.com/KirkDiggler/cluedo-engine/internal/testutils"
)

func (s *OrchestratorTestSuite) TestSaveToStoreAndResume() {
	client, _ := testutils.CreateTestRedisClient(s.T())
	repo, err := gamesnapshot.NewRedis(&gamesnapshot.RedisConfig{Client: client, Clock: s.clock})
	s.Require().NoError(err)

	s.orchestrator = s.newOrchestrator(&game.Config{Snapshots: repo})
	s.loadFixedDeal()
	_, err = s.orchestrator.NextTurn(s.ctx)
	s.Require().NoError(err)

	saved, err := s.orchestrator.SaveToStore(s.ctx)
	s.Require().NoError(err)
	s.Equal("game_1", saved.GameID)
	s.Equal(mustard, saved.PlayerCharacterID)
	s.Equal(scarlett, saved.CurrentTurn)
	s.False(saved.GameOver)
	s.Equal(fixedNow, saved.SavedAt)

	resumed := s.newOrchestrator(&game.Config{Snapshots: repo})
	s.Require().NoError(resumed.LoadFromStore(s.ctx, "game_1"))
	s.Equal(s.orchestrator.State().Solution, resumed.State().Solution)
	s.Equal(scarlett, resumed.CurrentCharacter().ID)

	err = resumed.LoadFromStore(s.ctx, "game_404")
	s.True(errors.IsNotFound(err))

	err = resumed.LoadFromStore(s.ctx, "")
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestStoreWithoutRepository() {
	s.loadFixedDeal()

	_, err := s.orchestrator.SaveToStore(s.ctx)
	s.True(errors.IsFailedPrecondition(err))

	err = s.orchestrator.LoadFromStore(s.ctx, "game_1")
	s.True(errors.IsFailedPrecondition(err))
}
