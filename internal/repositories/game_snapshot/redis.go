package gamesnapshot

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/cluedo-engine/internal/errors"
	"github.com/KirkDiggler/cluedo-engine/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/cluedo-engine/internal/redis"
)

const (
	// Key pattern: game_snapshot:{game_id}
	snapshotKeyPrefix = "game_snapshot:"
	indexKey          = "game_snapshot:index"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock

	// TTL expires snapshots; zero keeps them forever
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument(errConfigNil)
	}
	if c.Client == nil {
		return errors.InvalidArgument(errClientNil)
	}
	if c.TTL < 0 {
		return errors.InvalidArgument(errNegativeTTL)
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

var _ Repository = (*redisRepository)(nil)

// NewRedis creates a Redis-backed snapshot repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
		ttl:    cfg.TTL,
	}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if msg := validateSnapshot(input.Snapshot); msg != "" {
		return nil, errors.InvalidArgument(msg)
	}

	snapshot := *input.Snapshot
	snapshot.SavedAt = r.clock.Now().UTC()

	data, err := json.Marshal(&snapshot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, snapshotKeyPrefix+snapshot.GameID, data, r.ttl)
	pipe.SAdd(ctx, indexKey, snapshot.GameID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store snapshot in Redis")
	}

	return &SaveOutput{Snapshot: &snapshot}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	raw, err := r.client.Get(ctx, snapshotKeyPrefix+input.GameID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("snapshot for game %s not found", input.GameID).
				WithMeta("game_id", input.GameID)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get snapshot from Redis")
	}

	snapshot, err := decodeSnapshot(raw)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Snapshot: snapshot}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, snapshotKeyPrefix+input.GameID)
	pipe.SRem(ctx, indexKey, input.GameID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete snapshot from Redis")
	}

	if del.Val() == 0 {
		return nil, errors.NotFoundf("snapshot for game %s not found", input.GameID).
			WithMeta("game_id", input.GameID)
	}

	return &DeleteOutput{}, nil
}

// List reads every indexed snapshot. Index entries whose key has expired
// are pruned as they are found.
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.Limit < 0 {
		return nil, errors.InvalidArgument(errNegativeList)
	}

	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read snapshot index")
	}
	if len(ids) == 0 {
		return &ListOutput{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = snapshotKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get snapshots from Redis")
	}

	var stale []any
	snapshots := make([]*Snapshot, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}

		snapshot, err := decodeSnapshot(raw)
		if err != nil {
			slog.WarnContext(ctx, "Skipping unreadable snapshot",
				"game_id", ids[i],
				"error", err)
			continue
		}
		snapshots = append(snapshots, snapshot)
	}

	if len(stale) > 0 {
		if err := r.client.SRem(ctx, indexKey, stale...).Err(); err != nil {
			slog.WarnContext(ctx, "Failed to prune snapshot index",
				"count", len(stale),
				"error", err)
		}
	}

	return &ListOutput{Snapshots: newestFirst(snapshots, input.Limit)}, nil
}

func decodeSnapshot(raw string) (*Snapshot, error) {
	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal snapshot")
	}
	return &snapshot, nil
}

func newestFirst(snapshots []*Snapshot, limit int) []*Snapshot {
	slices.SortFunc(snapshots, func(a, b *Snapshot) int {
		if c := b.SavedAt.Compare(a.SavedAt); c != 0 {
			return c
		}
		return strings.Compare(a.GameID, b.GameID)
	})
	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}
	return snapshots
}
