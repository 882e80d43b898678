package board

// CellKind classifies a grid cell. Integer codes from configuration are
// decoded into kinds once, when the board is built.
type CellKind int

// Cell kinds
const (
	CellWall CellKind = iota
	CellOpen
	CellDoor
	CellRoom
)

// Raw codes used in board configuration. Any other code must appear in the
// room table.
const (
	CodeOpen = 0
	CodeWall = 1
	CodeDoor = 2
)

func (k CellKind) String() string {
	switch k {
	case CellOpen:
		return "open"
	case CellDoor:
		return "door"
	case CellRoom:
		return "room"
	default:
		return "wall"
	}
}

// Cell is a decoded grid cell. RoomID is only meaningful for CellRoom.
type Cell struct {
	Kind   CellKind
	RoomID int
}

// Walkable reports whether a character may stand on or cross the cell
func (c Cell) Walkable() bool {
	return c.Kind != CellWall
}
