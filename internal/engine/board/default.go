package board

import "github.com/KirkDiggler/cluedo-engine/internal/entities"

// Room names of the default layout
const (
	RoomKitchen      = "Kitchen"
	RoomBilliardRoom = "Billiard Room"
	RoomLibrary      = "Library"
	RoomConservatory = "Conservatory"
	RoomDiningRoom   = "Dining Room"
	RoomLounge       = "Lounge"
	RoomHall         = "Hall"
	RoomStudy        = "Study"
	RoomStudio       = "Studio"
)

// defaultGrid is the 24x24 reference layout. 0 open, 1 wall, 2 door, 3-9
// rooms. The Study (10) and Studio (11) have no cells on this layout but
// are still played as cards.
var defaultGrid = [][]int{
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 3, 3, 3, 3, 3, 1, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1, 1, 4, 4, 4, 4, 4, 1},
	{1, 3, 3, 3, 3, 3, 1, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1, 1, 4, 4, 4, 4, 4, 1},
	{1, 3, 3, 3, 3, 3, 1, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1, 1, 4, 4, 4, 4, 4, 1},
	{1, 3, 3, 3, 3, 3, 1, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1, 1, 4, 4, 4, 4, 4, 1},
	{1, 3, 3, 3, 3, 3, 1, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1, 1, 1, 4, 4, 1, 1, 1},
	{1, 1, 1, 1, 2, 1, 1, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1, 1, 1, 2, 1, 1, 1, 1},
	{1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 1, 1, 1, 1},
	{1, 5, 5, 5, 5, 5, 5, 5, 1, 0, 1, 1, 1, 1, 1, 0, 1, 6, 6, 6, 6, 6, 6, 1},
	{1, 5, 5, 5, 5, 5, 5, 5, 2, 0, 1, 1, 1, 1, 1, 0, 2, 6, 6, 6, 6, 6, 6, 1},
	{1, 5, 5, 5, 5, 5, 5, 5, 1, 0, 1, 1, 7, 7, 1, 0, 1, 6, 6, 6, 6, 6, 6, 1},
	{1, 5, 5, 5, 5, 5, 5, 5, 1, 0, 1, 7, 7, 7, 1, 0, 1, 6, 6, 6, 6, 6, 6, 1},
	{1, 5, 5, 5, 5, 5, 5, 5, 1, 0, 2, 7, 7, 7, 2, 0, 1, 6, 6, 6, 6, 6, 6, 1},
	{1, 1, 1, 5, 5, 1, 1, 1, 1, 0, 1, 7, 7, 7, 1, 0, 1, 1, 1, 2, 1, 1, 1, 1},
	{1, 1, 1, 1, 2, 1, 1, 1, 1, 0, 1, 1, 7, 1, 1, 0, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1},
	{1, 1, 1, 1, 2, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 1, 1, 1, 1},
	{1, 8, 8, 8, 8, 8, 1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 9, 9, 9, 1},
	{1, 8, 8, 8, 8, 8, 1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 9, 9, 9, 1},
	{1, 8, 8, 8, 8, 8, 1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 9, 9, 9, 1},
	{1, 8, 8, 8, 8, 8, 1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 0, 0, 0, 2, 9, 9, 9, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1},
}

// DefaultConfig returns a fresh copy of the classic board description
func DefaultConfig() *Config {
	grid := make([][]int, len(defaultGrid))
	for y, row := range defaultGrid {
		grid[y] = append([]int(nil), row...)
	}

	return &Config{
		Grid: grid,
		Rooms: map[int]string{
			3:  RoomKitchen,
			4:  RoomBilliardRoom,
			5:  RoomLibrary,
			6:  RoomConservatory,
			7:  RoomDiningRoom,
			8:  RoomLounge,
			9:  RoomHall,
			10: RoomStudy,
			11: RoomStudio,
		},
		Characters: []CharacterSpec{
			{ID: "colonel-mustard", Name: "Colonel Mustard", Color: "#FFD700", Start: entities.Position{X: 0, Y: 17}},
			{ID: "miss-scarlett", Name: "Miss Scarlett", Color: "#FF1493", Start: entities.Position{X: 23, Y: 8}},
			{ID: "reverend-green", Name: "Reverend Green", Color: "#32CD32", Start: entities.Position{X: 0, Y: 8}},
			{ID: "professor-plum", Name: "Professor Plum", Color: "#9370DB", Start: entities.Position{X: 23, Y: 16}},
			{ID: "mrs-white", Name: "Mrs. White", Color: "#F5F5F5", Start: entities.Position{X: 14, Y: 0}},
			{ID: "mrs-peacock", Name: "Mrs. Peacock", Color: "#1E90FF", Start: entities.Position{X: 9, Y: 23}},
		},
		Weapons: []string{"Dagger", "Candlestick", "Revolver", "Rope", "Wrench", "Lead Pipe"},
		SecretPassages: []SecretPassage{
			{From: RoomKitchen, To: RoomLounge, Position: entities.Position{X: 1, Y: 1}},
			{From: RoomLounge, To: RoomKitchen, Position: entities.Position{X: 1, Y: 22}},
			{From: RoomBilliardRoom, To: RoomHall, Position: entities.Position{X: 22, Y: 1}},
			{From: RoomHall, To: RoomBilliardRoom, Position: entities.Position{X: 22, Y: 22}},
		},
	}
}

// Default builds the classic board
func Default() *Board {
	return MustNew(DefaultConfig())
}
