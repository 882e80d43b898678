// Package entities holds the data model shared by the board, movement,
// decision and game layers: positions, cards, characters and the
// serializable game state.
package entities
