package entities

import "time"

// Action identifies what a history entry records
type Action string

// History actions
const (
	ActionMove          Action = "move"
	ActionSecretPassage Action = "secret_passage"
	ActionHypothesis    Action = "hypothesis"
	ActionAccusation    Action = "accusation"
)

// HistoryEntry is one line of the game log. Which optional fields are set
// depends on Action:
//
//	move, secret_passage: From, To, Room (empty outside rooms)
//	hypothesis:           Claim, RefutedBy, CardShown
//	accusation:           Claim, Correct
type HistoryEntry struct {
	Turn          int       `json:"turn"`
	CharacterID   string    `json:"character_id"`
	CharacterName string    `json:"character_name"`
	Action        Action    `json:"action"`
	From          *Position `json:"from,omitempty"`
	To            *Position `json:"to,omitempty"`
	Room          string    `json:"room,omitempty"`
	Claim         *Claim    `json:"claim,omitempty"`
	RefutedBy     string    `json:"refuted_by,omitempty"`
	CardShown     Card      `json:"card_shown,omitempty"`
	Correct       *bool     `json:"correct,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// HypothesisRecord is kept separately from the history so deduction code
// can scan past hypotheses without filtering the full log.
type HypothesisRecord struct {
	CharacterID string    `json:"character_id"`
	Claim       Claim     `json:"claim"`
	RefutedBy   string    `json:"refuted_by,omitempty"`
	CardShown   Card      `json:"card_shown,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Refuted reports whether another character showed a card
func (h HypothesisRecord) Refuted() bool {
	return h.RefutedBy != ""
}
