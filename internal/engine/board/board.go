// Package board models the static game grid: which cells are walkable,
// which belong to rooms, where the doors and secret passages are, and which
// characters and weapons are played.
package board

import (
	"fmt"
	"slices"

	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
)

// Board is immutable once built and safe to share between sessions
type Board struct {
	width  int
	height int
	cells  [][]Cell

	roomNames  map[int]string
	roomIDs    []int
	roomByName map[string]int

	characters []CharacterSpec
	weapons    []entities.Card
	passages   map[string]SecretPassage
}

// New validates the configuration and builds the board
func New(cfg *Config) (*Board, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("board config is required")
	}

	vb := errors.NewValidationBuilder()

	b := &Board{
		roomNames:  make(map[int]string, len(cfg.Rooms)),
		roomByName: make(map[string]int, len(cfg.Rooms)),
		passages:   make(map[string]SecretPassage, len(cfg.SecretPassages)),
	}

	for id, name := range cfg.Rooms {
		if id <= CodeDoor {
			vb.Fieldf("rooms", "room code %d collides with a reserved cell code", id)
			continue
		}
		if name == "" {
			vb.Fieldf("rooms", "room code %d has no name", id)
			continue
		}
		if _, dup := b.roomByName[name]; dup {
			vb.Fieldf("rooms", "room name %q is used twice", name)
			continue
		}
		b.roomNames[id] = name
		b.roomByName[name] = id
		b.roomIDs = append(b.roomIDs, id)
	}
	slices.Sort(b.roomIDs)

	b.decodeGrid(cfg.Grid, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid board config")
	}

	b.loadRoster(cfg, vb)
	b.loadPassages(cfg.SecretPassages, vb)
	b.checkCardNames(vb)
	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid board config")
	}

	return b, nil
}

// MustNew is New for configurations compiled into the binary
func MustNew(cfg *Config) *Board {
	b, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf("board: %v", err))
	}
	return b
}

func (b *Board) decodeGrid(grid [][]int, vb *errors.ValidationBuilder) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		vb.RequiredField("grid")
		return
	}

	b.height = len(grid)
	b.width = len(grid[0])
	b.cells = make([][]Cell, b.height)

	for y, row := range grid {
		if len(row) != b.width {
			vb.Fieldf("grid", "row %d has %d cells, expected %d", y, len(row), b.width)
			continue
		}
		b.cells[y] = make([]Cell, b.width)
		for x, code := range row {
			switch code {
			case CodeOpen:
				b.cells[y][x] = Cell{Kind: CellOpen}
			case CodeWall:
				b.cells[y][x] = Cell{Kind: CellWall}
			case CodeDoor:
				b.cells[y][x] = Cell{Kind: CellDoor}
			default:
				if _, ok := b.roomNames[code]; !ok {
					vb.Fieldf("grid", "unknown cell code %d at (%d,%d)", code, x, y)
					continue
				}
				b.cells[y][x] = Cell{Kind: CellRoom, RoomID: code}
			}
		}
	}
}

func (b *Board) loadRoster(cfg *Config, vb *errors.ValidationBuilder) {
	if len(cfg.Characters) < 2 {
		vb.Field("characters", "at least two characters are required")
	}

	seen := make(map[string]bool, len(cfg.Characters))
	for _, spec := range cfg.Characters {
		switch {
		case spec.ID == "" || spec.Name == "":
			vb.Field("characters", "every character needs an id and a name")
			continue
		case seen[spec.ID]:
			vb.Fieldf("characters", "character id %q is used twice", spec.ID)
			continue
		case !b.IsWalkable(spec.Start):
			vb.Fieldf("characters", "start %s of %s is not a walkable cell", spec.Start, spec.ID)
			continue
		}
		seen[spec.ID] = true
		b.characters = append(b.characters, spec)
	}

	if len(cfg.Weapons) == 0 {
		vb.RequiredField("weapons")
	}
	for _, w := range cfg.Weapons {
		b.weapons = append(b.weapons, entities.Card(w))
	}
}

func (b *Board) loadPassages(passages []SecretPassage, vb *errors.ValidationBuilder) {
	for _, p := range passages {
		if _, ok := b.roomByName[p.To]; !ok {
			vb.Fieldf("secret_passages", "unknown destination room %q", p.To)
			continue
		}
		if room, ok := b.RoomAt(p.Position); !ok || room != p.From {
			vb.Fieldf("secret_passages", "passage %s is not inside %q", p.Position, p.From)
			continue
		}
		b.passages[p.From] = p
	}
}

// checkCardNames rejects decks where a card name appears twice, since cards
// are identified by name alone.
func (b *Board) checkCardNames(vb *errors.ValidationBuilder) {
	seen := make(map[entities.Card]bool)
	for _, card := range b.Deck().All() {
		if seen[card] {
			vb.Fieldf("cards", "card %q appears more than once", card)
		}
		seen[card] = true
	}
}

// Width is the number of columns
func (b *Board) Width() int { return b.width }

// Height is the number of rows
func (b *Board) Height() int { return b.height }

// InBounds reports whether p lies on the grid
func (b *Board) InBounds(p entities.Position) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

// CellAt returns the decoded cell. ok is false off the grid.
func (b *Board) CellAt(p entities.Position) (Cell, bool) {
	if !b.InBounds(p) {
		return Cell{}, false
	}
	return b.cells[p.Y][p.X], true
}

// IsWalkable reports whether p is an open, door or room cell
func (b *Board) IsWalkable(p entities.Position) bool {
	cell, ok := b.CellAt(p)
	return ok && cell.Walkable()
}

// IsDoor reports whether p is a door cell
func (b *Board) IsDoor(p entities.Position) bool {
	cell, ok := b.CellAt(p)
	return ok && cell.Kind == CellDoor
}

// IsInRoom reports whether p is a room cell. Doors do not count.
func (b *Board) IsInRoom(p entities.Position) bool {
	cell, ok := b.CellAt(p)
	return ok && cell.Kind == CellRoom
}

// RoomAt returns the name of the room containing p
func (b *Board) RoomAt(p entities.Position) (string, bool) {
	cell, ok := b.CellAt(p)
	if !ok || cell.Kind != CellRoom {
		return "", false
	}
	return b.roomNames[cell.RoomID], true
}

// RoomDoors returns every door cell orthogonally adjacent to a cell of the
// named room, in row-major order.
func (b *Board) RoomDoors(name string) []entities.Position {
	id, ok := b.roomByName[name]
	if !ok {
		return nil
	}

	var doors []entities.Position
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			p := entities.Position{X: x, Y: y}
			if b.cells[y][x].Kind != CellDoor {
				continue
			}
			for _, n := range p.Neighbors() {
				if cell, ok := b.CellAt(n); ok && cell.Kind == CellRoom && cell.RoomID == id {
					doors = append(doors, p)
					break
				}
			}
		}
	}
	return doors
}

// RoomNames lists every room in ascending code order
func (b *Board) RoomNames() []string {
	names := make([]string, len(b.roomIDs))
	for i, id := range b.roomIDs {
		names[i] = b.roomNames[id]
	}
	return names
}

// Center is the cell the movement heuristic steers towards
func (b *Board) Center() entities.Position {
	return entities.Position{X: b.width / 2, Y: b.height / 2}
}

// SecretPassage returns the passage leaving the named room
func (b *Board) SecretPassage(room string) (SecretPassage, bool) {
	p, ok := b.passages[room]
	return p, ok
}

// PassageDestination is where a character lands after taking the passage out
// of room: the return passage cell when there is one, otherwise the first
// cell of the destination room.
func (b *Board) PassageDestination(room string) (entities.Position, bool) {
	p, ok := b.passages[room]
	if !ok {
		return entities.Position{}, false
	}
	if back, ok := b.passages[p.To]; ok {
		return back.Position, true
	}

	id := b.roomByName[p.To]
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if cell := b.cells[y][x]; cell.Kind == CellRoom && cell.RoomID == id {
				return entities.Position{X: x, Y: y}, true
			}
		}
	}
	return entities.Position{}, false
}

// Characters returns the roster in configuration order
func (b *Board) Characters() []CharacterSpec {
	return slices.Clone(b.characters)
}

// Deck builds the full card deck: rooms, weapons, then character names
func (b *Board) Deck() entities.Deck {
	deck := entities.Deck{
		Weapons: slices.Clone(b.weapons),
	}
	for _, name := range b.RoomNames() {
		deck.Rooms = append(deck.Rooms, entities.Card(name))
	}
	for _, c := range b.characters {
		deck.Characters = append(deck.Characters, entities.Card(c.Name))
	}
	return deck
}
