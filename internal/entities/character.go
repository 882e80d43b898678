package entities

import (
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityTypeCharacter is the rpg-toolkit entity type for board characters
const EntityTypeCharacter = "character"

// Character is one of the suspects on the board. Exactly one character is
// driven by the human player; the rest are AI controlled.
type Character struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	Position Position `json:"position"`
	IsPlayer bool     `json:"is_player"`
	IsAI     bool     `json:"is_ai"`
	Hand     []Card   `json:"hand"`

	// EliminatedCards are cards this character has seen during refutations.
	// Only tracked for the human player.
	EliminatedCards []Card `json:"eliminated_cards"`

	// Eliminated is set after a wrong accusation
	Eliminated bool `json:"eliminated"`
}

var _ core.Entity = (*Character)(nil)

// GetID returns the character's ID
func (c *Character) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *Character) GetType() string {
	return EntityTypeCharacter
}

// HasCard reports whether the card is in this character's hand
func (c *Character) HasCard(card Card) bool {
	return slices.Contains(c.Hand, card)
}

// FirstMatchingCard returns the first card in hand order that the claim names
func (c *Character) FirstMatchingCard(claim Claim) (Card, bool) {
	for _, card := range c.Hand {
		if claim.Contains(card) {
			return card, true
		}
	}
	return "", false
}

// LearnCard records a card shown to this character. Returns false if it was
// already known.
func (c *Character) LearnCard(card Card) bool {
	if slices.Contains(c.EliminatedCards, card) {
		return false
	}
	c.EliminatedCards = append(c.EliminatedCards, card)
	return true
}

// Clone returns a deep copy
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	out.Hand = slices.Clone(c.Hand)
	out.EliminatedCards = slices.Clone(c.EliminatedCards)
	return &out
}
