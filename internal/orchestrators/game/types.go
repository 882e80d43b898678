package game

import (
	"github.com/KirkDiggler/cluedo-engine/internal/clients/decision"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
)

// Phase is where the session is in its lifecycle
type Phase string

// Phases
const (
	PhaseSetup      Phase = "setup"
	PhasePlayerTurn Phase = "player_turn"
	PhaseAITurn     Phase = "ai_turn"
	PhaseGameOver   Phase = "game_over"
)

// Event types published on the event bus
const (
	EventGameInitialized = "game.initialized"
	EventCharacterMoved  = "character.moved"
	EventHypothesisMade  = "hypothesis.made"
	EventAccusationMade  = "accusation.made"
	EventTurnAdvanced    = "turn.advanced"
	EventGameLoaded      = "game.loaded"
)

// InitializeGameInput defines the request for starting a game
type InitializeGameInput struct {
	// PlayerCharacterID pins the human's character; empty picks one at random
	PlayerCharacterID string
}

// InitializeGameOutput defines the response for starting a game
type InitializeGameOutput struct {
	PlayerCharacter *entities.Character
	State           *entities.GameState
}

// MoveCharacterInput defines the request for committing a move
type MoveCharacterInput struct {
	CharacterID string
	Position    entities.Position
}

// MoveCharacterOutput reports the room entered, if any
type MoveCharacterOutput struct {
	From entities.Position
	To   entities.Position
	Room string
}

// InRoom reports whether the move ended inside a room
func (o *MoveCharacterOutput) InRoom() bool {
	return o.Room != ""
}

// UseSecretPassageInput defines the request for taking a secret passage
type UseSecretPassageInput struct {
	CharacterID string
}

// UseSecretPassageOutput reports where the passage led
type UseSecretPassageOutput struct {
	From entities.Position
	To   entities.Position
	Room string
}

// MakeHypothesisInput defines a hypothesis made by a character
type MakeHypothesisInput struct {
	CharacterID string
	Claim       entities.Claim
}

// MakeHypothesisOutput is the result of asking the other characters
type MakeHypothesisOutput struct {
	Refuted   bool
	RefutedBy string
	CardShown entities.Card
}

// MakeAccusationInput defines a final accusation
type MakeAccusationInput struct {
	CharacterID string
	Claim       entities.Claim
}

// MakeAccusationOutput is the verdict. Solution is only revealed to an
// accuser who got it wrong.
type MakeAccusationOutput struct {
	Correct  bool
	Message  string
	Solution *entities.Claim
}

// PlayAITurnInput defines the request for an AI decision
type PlayAITurnInput struct {
	CharacterID   string
	Dice          entities.DiceResult
	PossibleMoves []entities.MoveOption
}

// TurnReport describes everything that happened during AutoPlayTurn
type TurnReport struct {
	CharacterID string
	Skipped     bool
	Dice        entities.DiceResult
	Decision    *decision.Decision
	Move        *MoveCharacterOutput
	Hypothesis  *entities.Claim
	Refutation  *MakeHypothesisOutput
	Accusation  *MakeAccusationOutput
	GameOver    bool
	NextTurn    string
}
