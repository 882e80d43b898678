// Package gamesnapshot stores serialized game sessions so a game can be
// resumed later.
package gamesnapshot

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=gamesnapshotmock github.com/KirkDiggler/cluedo-engine/internal/repositories/game_snapshot Repository

// Snapshot is a saved game. Data is the JSON produced by the game
// orchestrator's SaveGame; the other fields are copied out of it so a
// listing does not have to decode every snapshot.
type Snapshot struct {
	GameID            string    `json:"game_id"`
	Data              string    `json:"data"`
	PlayerCharacterID string    `json:"player_character_id"`
	CurrentTurn       string    `json:"current_turn"`
	GameOver          bool      `json:"game_over"`
	SavedAt           time.Time `json:"saved_at"`
}

// SaveInput contains parameters for saving a snapshot. An existing snapshot
// with the same game ID is replaced.
type SaveInput struct {
	Snapshot *Snapshot
}

// SaveOutput contains the stored snapshot with SavedAt set
type SaveOutput struct {
	Snapshot *Snapshot
}

// GetInput contains parameters for retrieving a snapshot
type GetInput struct {
	GameID string
}

// GetOutput contains the retrieved snapshot
type GetOutput struct {
	Snapshot *Snapshot
}

// DeleteInput contains parameters for deleting a snapshot
type DeleteInput struct {
	GameID string
}

// DeleteOutput is empty for now
type DeleteOutput struct{}

// ListInput contains parameters for listing snapshots
type ListInput struct {
	// Limit caps the number of results; zero means no limit
	Limit int
}

// ListOutput contains snapshots, most recently saved first
type ListOutput struct {
	Snapshots []*Snapshot
}

// Repository defines the interface for snapshot storage operations
type Repository interface {
	// Save stores or replaces a snapshot
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a snapshot by game ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a snapshot
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns saved snapshots, newest first
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

const (
	errSnapshotNil  = "snapshot cannot be nil"
	errGameIDEmpty  = "game ID cannot be empty"
	errDataEmpty    = "snapshot data cannot be empty"
	errConfigNil    = "config cannot be nil"
	errClientNil    = "client cannot be nil"
	errPathEmpty    = "path cannot be empty"
	errNegativeTTL  = "ttl cannot be negative"
	errNegativeList = "limit cannot be negative"
)

func validateSnapshot(s *Snapshot) string {
	switch {
	case s == nil:
		return errSnapshotNil
	case s.GameID == "":
		return errGameIDEmpty
	case s.Data == "":
		return errDataEmpty
	}
	return ""
}
