package entities

import (
	"slices"
	"time"
)

// GameState is the complete, serializable state of one game session.
//
// Invariants maintained by the game orchestrator:
//   - the solution and all hands partition the deck
//   - CurrentTurn == TurnOrder[CurrentTurnIndex]
//   - every character stands on a walkable cell
type GameState struct {
	GameID            string                `json:"game_id"`
	Solution          Claim                 `json:"solution"`
	Characters        map[string]*Character `json:"characters"`
	PlayerCharacterID string                `json:"player_character_id"`
	TurnOrder         []string              `json:"turn_order"`
	CurrentTurnIndex  int                   `json:"current_turn_index"`
	CurrentTurn       string                `json:"current_turn"`
	History           []HistoryEntry        `json:"history"`
	Hypotheses        []HypothesisRecord    `json:"hypotheses"`
	GameOver          bool                  `json:"game_over"`
	Winner            string                `json:"winner,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}

// Character looks up a character by ID
func (s *GameState) Character(id string) (*Character, bool) {
	c, ok := s.Characters[id]
	return c, ok
}

// Current returns the character whose turn it is
func (s *GameState) Current() *Character {
	return s.Characters[s.CurrentTurn]
}

// Player returns the human-controlled character
func (s *GameState) Player() *Character {
	return s.Characters[s.PlayerCharacterID]
}

// OrderedCharacters returns characters in turn order
func (s *GameState) OrderedCharacters() []*Character {
	out := make([]*Character, 0, len(s.TurnOrder))
	for _, id := range s.TurnOrder {
		if c, ok := s.Characters[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a deep copy
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	out := *s
	out.Characters = make(map[string]*Character, len(s.Characters))
	for id, c := range s.Characters {
		out.Characters[id] = c.Clone()
	}
	out.TurnOrder = slices.Clone(s.TurnOrder)
	out.Hypotheses = slices.Clone(s.Hypotheses)
	out.History = make([]HistoryEntry, len(s.History))
	for i, entry := range s.History {
		out.History[i] = entry.clone()
	}
	return &out
}

// Redacted returns the state as viewerID is allowed to see it: no solution,
// no other character's hand and no cards shown in exchanges the viewer was
// not part of.
func (s *GameState) Redacted(viewerID string) *GameState {
	out := s.Clone()
	out.Solution = Claim{}
	for id, c := range out.Characters {
		if id != viewerID {
			c.Hand = nil
			c.EliminatedCards = nil
		}
	}
	for i := range out.History {
		entry := &out.History[i]
		if entry.CharacterID != viewerID && entry.RefutedBy != viewerID {
			entry.CardShown = ""
		}
	}
	for i := range out.Hypotheses {
		record := &out.Hypotheses[i]
		if record.CharacterID != viewerID && record.RefutedBy != viewerID {
			record.CardShown = ""
		}
	}
	return out
}

func (e HistoryEntry) clone() HistoryEntry {
	out := e
	if e.From != nil {
		from := *e.From
		out.From = &from
	}
	if e.To != nil {
		to := *e.To
		out.To = &to
	}
	if e.Claim != nil {
		claim := *e.Claim
		out.Claim = &claim
	}
	if e.Correct != nil {
		correct := *e.Correct
		out.Correct = &correct
	}
	return out
}
