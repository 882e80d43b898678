package board_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cluedo-engine/internal/engine/board"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
)

type BoardTestSuite struct {
	suite.Suite
	board *board.Board
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardTestSuite))
}

func (s *BoardTestSuite) SetupTest() {
	s.board = board.Default()
}

func pos(x, y int) entities.Position {
	return entities.Position{X: x, Y: y}
}

func (s *BoardTestSuite) TestDimensions() {
	s.Equal(24, s.board.Width())
	s.Equal(24, s.board.Height())
	s.Equal(pos(12, 12), s.board.Center())
}

func (s *BoardTestSuite) TestCellClassification() {
	testCases := []struct {
		name     string
		position entities.Position
		kind     board.CellKind
		walkable bool
	}{
		{"corridor", pos(9, 0), board.CellOpen, true},
		{"wall", pos(0, 0), board.CellWall, false},
		{"kitchen door", pos(4, 6), board.CellDoor, true},
		{"kitchen", pos(2, 2), board.CellRoom, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cell, ok := s.board.CellAt(tc.position)
			s.Require().True(ok)
			s.Equal(tc.kind, cell.Kind)
			s.Equal(tc.walkable, s.board.IsWalkable(tc.position))
		})
	}
}

func (s *BoardTestSuite) TestOutOfBoundsQueriesReturnNothing() {
	for _, p := range []entities.Position{pos(-1, 0), pos(0, -1), pos(24, 3), pos(3, 24)} {
		_, ok := s.board.CellAt(p)
		s.False(ok)
		s.False(s.board.IsWalkable(p))
		s.False(s.board.IsDoor(p))
		s.False(s.board.IsInRoom(p))
		room, ok := s.board.RoomAt(p)
		s.False(ok)
		s.Empty(room)
	}
}

func (s *BoardTestSuite) TestRoomAt() {
	room, ok := s.board.RoomAt(pos(12, 12))
	s.True(ok)
	s.Equal(board.RoomDiningRoom, room)

	_, ok = s.board.RoomAt(pos(4, 6))
	s.False(ok, "doors are not part of a room")
	s.True(s.board.IsDoor(pos(4, 6)))
}

func (s *BoardTestSuite) TestRoomDoors() {
	s.Equal([]entities.Position{pos(10, 14), pos(14, 14)}, s.board.RoomDoors(board.RoomDiningRoom))
	s.Equal([]entities.Position{pos(16, 11), pos(19, 15)}, s.board.RoomDoors(board.RoomConservatory))
	s.Empty(s.board.RoomDoors(board.RoomStudy))
	s.Empty(s.board.RoomDoors("Attic"))
}

func (s *BoardTestSuite) TestDeck() {
	deck := s.board.Deck()

	s.Len(deck.Rooms, 9)
	s.Len(deck.Weapons, 6)
	s.Len(deck.Characters, 6)
	s.Equal(entities.Card(board.RoomKitchen), deck.Rooms[0])
	s.Equal(entities.Card("Colonel Mustard"), deck.Characters[0])

	kind, ok := deck.KindOf("Rope")
	s.True(ok)
	s.Equal(entities.CardKindWeapon, kind)
}

func (s *BoardTestSuite) TestSecretPassages() {
	passage, ok := s.board.SecretPassage(board.RoomKitchen)
	s.Require().True(ok)
	s.Equal(board.RoomLounge, passage.To)

	dest, ok := s.board.PassageDestination(board.RoomKitchen)
	s.True(ok)
	s.Equal(pos(1, 22), dest)

	_, ok = s.board.PassageDestination(board.RoomLibrary)
	s.False(ok)
}

func (s *BoardTestSuite) TestCharacterStartsAreWalkable() {
	roster := s.board.Characters()
	s.Len(roster, 6)
	for _, c := range roster {
		s.True(s.board.IsWalkable(c.Start), c.ID)
	}
}

func (s *BoardTestSuite) TestLoadFile() {
	b, err := board.LoadFile("testdata/small.yaml")
	s.Require().NoError(err)

	s.Equal(6, b.Width())
	s.Equal(5, b.Height())
	s.Equal([]string{"Parlor", "Cellar"}, b.RoomNames())
	s.Equal([]entities.Position{pos(2, 1)}, b.RoomDoors("Parlor"))
	s.True(b.IsWalkable(pos(5, 4)))
}

func (s *BoardTestSuite) TestInvalidConfigs() {
	testCases := []struct {
		name   string
		mutate func(cfg *board.Config)
	}{
		{"ragged grid", func(cfg *board.Config) { cfg.Grid[3] = cfg.Grid[3][:10] }},
		{"empty grid", func(cfg *board.Config) { cfg.Grid = nil }},
		{"unknown code", func(cfg *board.Config) { cfg.Grid[0][0] = 42 }},
		{"start on a wall", func(cfg *board.Config) { cfg.Characters[0].Start = pos(0, 0) }},
		{"duplicate character", func(cfg *board.Config) { cfg.Characters[1].ID = cfg.Characters[0].ID }},
		{"no weapons", func(cfg *board.Config) { cfg.Weapons = nil }},
		{"card name collision", func(cfg *board.Config) { cfg.Weapons[0] = board.RoomHall }},
		{"passage outside its room", func(cfg *board.Config) { cfg.SecretPassages[0].Position = pos(9, 0) }},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := board.DefaultConfig()
			tc.mutate(cfg)

			_, err := board.New(cfg)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *BoardTestSuite) TestParseConfigRejectsBadYAML() {
	_, err := board.ParseConfig([]byte("grid: [[0, 1], oops"))
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}
