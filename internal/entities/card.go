package entities

import "slices"

// Card is identified by its name
type Card string

// CardKind is one of the three disjoint card categories
type CardKind string

// Card kinds
const (
	CardKindRoom      CardKind = "room"
	CardKindWeapon    CardKind = "weapon"
	CardKindCharacter CardKind = "character"
)

// Deck is the full set of cards in play
type Deck struct {
	Rooms      []Card `json:"rooms"`
	Weapons    []Card `json:"weapons"`
	Characters []Card `json:"characters"`
}

// All returns every card: rooms, then weapons, then characters
func (d Deck) All() []Card {
	all := make([]Card, 0, d.Size())
	all = append(all, d.Rooms...)
	all = append(all, d.Weapons...)
	return append(all, d.Characters...)
}

// Size is the total number of cards
func (d Deck) Size() int {
	return len(d.Rooms) + len(d.Weapons) + len(d.Characters)
}

// KindOf reports which category a card belongs to
func (d Deck) KindOf(card Card) (CardKind, bool) {
	switch {
	case slices.Contains(d.Rooms, card):
		return CardKindRoom, true
	case slices.Contains(d.Weapons, card):
		return CardKindWeapon, true
	case slices.Contains(d.Characters, card):
		return CardKindCharacter, true
	}
	return "", false
}

// Claim names a location, a culprit and a weapon. It is used for
// hypotheses, accusations and the hidden solution.
type Claim struct {
	Location  Card `json:"location"`
	Character Card `json:"character"`
	Weapon    Card `json:"weapon"`
}

// Contains reports whether card is one of the three named cards
func (c Claim) Contains(card Card) bool {
	return c.Location == card || c.Character == card || c.Weapon == card
}

// IsZero reports whether no card is set
func (c Claim) IsZero() bool {
	return c == Claim{}
}
