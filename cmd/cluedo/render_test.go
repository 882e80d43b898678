package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/cluedo-engine/internal/engine/board"
	"github.com/KirkDiggler/cluedo-engine/internal/entities"
)

func TestParsePosition(t *testing.T) {
	p, err := parsePosition("4, 20")
	require.NoError(t, err)
	assert.Equal(t, entities.Position{X: 4, Y: 20}, p)

	for _, bad := range []string{"", "4", "a,1", "1,b", "1;2"} {
		_, err := parsePosition(bad)
		assert.Error(t, err, bad)
	}
}

func TestRenderBoard(t *testing.T) {
	color.Disable()
	defer func() { color.Enable = true }()

	b := board.Default()
	mustard := &entities.Character{Name: "Colonel Mustard", Color: "#FFD700", Position: entities.Position{X: 0, Y: 17}}

	var buf bytes.Buffer
	renderBoard(&buf, b, map[entities.Position]*entities.Character{mustard.Position: mustard},
		map[entities.Position]bool{{X: 1, Y: 17}: true})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, b.Height())
	assert.Equal(t, "#kkkkk###.####.###bbbbb#", lines[1])
	assert.True(t, strings.HasPrefix(lines[17], "C*."), lines[17])
	assert.Equal(t, "####D####.####.####D####", lines[6])
}
