package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"

	"github.com/KirkDiggler/cluedo-engine/internal/engine/board"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/orchestrators/game"
)

var (
	colorWall   = color.Style{color.FgGray}
	colorOpen   = color.Style{color.FgDarkGray}
	colorDoor   = color.Style{color.FgYellow, color.OpBold}
	colorRoom   = color.Style{color.FgBlue}
	colorPath   = color.Style{color.FgGreen, color.OpBold}
	colorHeader = color.Style{color.FgWhite, color.OpBold}
	colorDenied = color.Style{color.FgRed, color.OpBold}
	colorSubtle = color.Style{color.FgGray}
)

// renderBoard draws the grid one character per cell. Room cells show the
// first letter of the room; tokens and marks are drawn over the cell.
func renderBoard(w io.Writer, b *board.Board, tokens map[entities.Position]*entities.Character, marks map[entities.Position]bool) {
	for y := 0; y < b.Height(); y++ {
		var line strings.Builder
		for x := 0; x < b.Width(); x++ {
			p := entities.Position{X: x, Y: y}
			line.WriteString(renderCell(b, p, tokens[p], marks[p]))
		}
		_, _ = fmt.Fprintln(w, line.String())
	}
}

func renderCell(b *board.Board, p entities.Position, token *entities.Character, marked bool) string {
	if token != nil {
		return color.HEX(token.Color).Sprint(initial(token.Name))
	}
	if marked {
		return colorPath.Sprint("*")
	}

	cell, _ := b.CellAt(p)
	switch cell.Kind {
	case board.CellOpen:
		return colorOpen.Sprint(".")
	case board.CellDoor:
		return colorDoor.Sprint("D")
	case board.CellRoom:
		room, _ := b.RoomAt(p)
		return colorRoom.Sprint(strings.ToLower(initial(room)))
	default:
		return colorWall.Sprint("#")
	}
}

func initial(name string) string {
	if name == "" {
		return "?"
	}
	return strings.ToUpper(name[:1])
}

func renderLegend(w io.Writer, characters []*entities.Character) {
	for _, c := range characters {
		label := c.Name
		if c.IsPlayer {
			label += " (you)"
		}
		if c.Eliminated {
			label += colorSubtle.Sprint(" eliminated")
		}
		_, _ = fmt.Fprintf(w, "  %s %s @ %s\n", color.HEX(c.Color).Sprint(initial(c.Name)), label, c.Position)
	}
}

func renderReport(w io.Writer, state *entities.GameState, report *game.TurnReport) {
	actor := state.Characters[report.CharacterID]
	name := color.HEX(actor.Color).Sprint(actor.Name)

	if report.Skipped {
		_, _ = fmt.Fprintf(w, "%s is out of the game\n", name)
		return
	}

	_, _ = fmt.Fprintf(w, "%s rolls %d + %d = %d", name, report.Dice.Die1, report.Dice.Die2, report.Dice.Total)
	switch {
	case report.Move != nil && report.Move.InRoom():
		_, _ = fmt.Fprintf(w, ", moves to %s in the %s", report.Move.To, report.Move.Room)
	case report.Move != nil:
		_, _ = fmt.Fprintf(w, ", moves to %s", report.Move.To)
	default:
		_, _ = fmt.Fprint(w, ", stays put")
	}
	if report.Decision != nil && report.Decision.Source != "" {
		_, _ = fmt.Fprint(w, colorSubtle.Sprintf(" [%s]", report.Decision.Source))
	}
	_, _ = fmt.Fprintln(w)

	if report.Hypothesis != nil {
		claim := report.Hypothesis
		_, _ = fmt.Fprintf(w, "  suggests %s in the %s with the %s", claim.Character, claim.Location, claim.Weapon)
		if report.Refutation != nil && report.Refutation.Refuted {
			refuter := state.Characters[report.Refutation.RefutedBy]
			_, _ = fmt.Fprintf(w, ", disproved by %s", refuter.Name)
			if actor.IsPlayer {
				_, _ = fmt.Fprintf(w, " (%s)", report.Refutation.CardShown)
			}
		} else {
			_, _ = fmt.Fprint(w, ", nobody can disprove it")
		}
		_, _ = fmt.Fprintln(w)
	}

	if report.Accusation != nil {
		style := colorHeader
		if !report.Accusation.Correct {
			style = colorDenied
		}
		_, _ = fmt.Fprintf(w, "  %s\n", style.Sprint(report.Accusation.Message))
	}
}

// parsePosition reads "x,y"
func parsePosition(s string) (entities.Position, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return entities.Position{}, fmt.Errorf("position %q must look like x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return entities.Position{}, fmt.Errorf("bad x in %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return entities.Position{}, fmt.Errorf("bad y in %q: %w", s, err)
	}
	return entities.Position{X: x, Y: y}, nil
}
