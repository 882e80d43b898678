package board

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
)

// Config is the static description of a board and the cards played on it
type Config struct {
	// Grid rows, top to bottom. Every row must have the same length.
	Grid [][]int `yaml:"grid"`

	// Rooms maps grid codes (3 and up) to room names. Rooms without cells
	// are still dealt as cards.
	Rooms map[int]string `yaml:"rooms"`

	Characters     []CharacterSpec `yaml:"characters"`
	Weapons        []string        `yaml:"weapons"`
	SecretPassages []SecretPassage `yaml:"secret_passages"`
}

// CharacterSpec is a roster entry
type CharacterSpec struct {
	ID    string            `yaml:"id"`
	Name  string            `yaml:"name"`
	Color string            `yaml:"color"`
	Start entities.Position `yaml:"start"`
}

// SecretPassage lets a character standing in From jump to To. Position is
// the passage cell inside From.
type SecretPassage struct {
	From     string            `yaml:"from"`
	To       string            `yaml:"to"`
	Position entities.Position `yaml:"position"`
}

// ParseConfig decodes a YAML board description
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse board config")
	}
	return cfg, nil
}

// LoadFile reads and builds a board from a YAML file
func LoadFile(path string) (*Board, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read board config %s", path)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}

	return New(cfg)
}
