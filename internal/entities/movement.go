package entities

// DiceResult is a roll of two six-sided dice
type DiceResult struct {
	Die1  int `json:"die1"`
	Die2  int `json:"die2"`
	Total int `json:"total"`
}

// MoveOption is a destination reachable within a movement budget together
// with a shortest path to it. Distance is len(Path)-1.
type MoveOption struct {
	Destination Position   `json:"destination"`
	Path        []Position `json:"path"`
	Distance    int        `json:"distance"`
}
