package decision

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
)

// SourceGemini marks decisions returned by Gemini
const SourceGemini = "gemini"

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.5-flash"

//go:embed prompts/ai_turn.tmpl
var aiTurnPrompt string

var aiTurnTemplate = template.Must(template.New("ai_turn").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(aiTurnPrompt))

// ContentGenerator is the slice of *genai.GenerativeModel the provider uses
type ContentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// RoomNamer resolves room names for the prompt
type RoomNamer interface {
	RoomAt(p entities.Position) (string, bool)
	RoomNames() []string
}

// GeminiConfig configures the Gemini decision provider
type GeminiConfig struct {
	APIKey string
	Model  string
	Board  RoomNamer
}

// Validate ensures the configuration is usable
func (c *GeminiConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("APIKey", c.APIKey, vb)
	if c.Board == nil {
		vb.RequiredField("Board")
	}

	return vb.Build()
}

// GeminiProvider asks a Gemini model to pick a move
type GeminiProvider struct {
	client    *genai.Client
	generator ContentGenerator
	board     RoomNamer
}

var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider connects to Gemini. Close releases the client.
func NewGeminiProvider(ctx context.Context, cfg *GeminiConfig) (*GeminiProvider, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to create gemini client")
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	return &GeminiProvider{
		client:    client,
		generator: client.GenerativeModel(modelName),
		board:     cfg.Board,
	}, nil
}

// NewGeminiProviderWithGenerator wires a provider around an existing
// generator, typically a stub in tests.
func NewGeminiProviderWithGenerator(generator ContentGenerator, board RoomNamer) *GeminiProvider {
	return &GeminiProvider{generator: generator, board: board}
}

// Close releases the underlying client
func (g *GeminiProvider) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

type promptMove struct {
	entities.MoveOption
	Room string
}

// Decide renders the prompt, asks the model and parses its YAML answer
func (g *GeminiProvider) Decide(ctx context.Context, input *DecideInput) (*Decision, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	moves := make([]promptMove, 0, len(input.PossibleMoves))
	for _, option := range input.PossibleMoves {
		room, _ := g.board.RoomAt(option.Destination)
		moves = append(moves, promptMove{MoveOption: option, Room: room})
	}

	var buf bytes.Buffer
	err := aiTurnTemplate.Execute(&buf, struct {
		Character *entities.Character
		Dice      entities.DiceResult
		Rooms     []string
		Moves     []promptMove
	}{
		Character: input.Character,
		Dice:      input.Dice,
		Rooms:     g.board.RoomNames(),
		Moves:     moves,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render prompt")
	}

	resp, err := g.generator.GenerateContent(ctx, genai.Text(buf.String()))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "gemini request failed")
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.DataLoss("no content returned from gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, errors.DataLoss("unexpected response type from gemini")
	}

	return ParseYAMLDecision(string(text))
}

// ParseYAMLDecision decodes a model answer, tolerating a surrounding code
// fence.
func ParseYAMLDecision(text string) (*Decision, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```yaml")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	var decision Decision
	if err := yaml.Unmarshal([]byte(clean), &decision); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to parse decision yaml").
			WithMeta("output", clean)
	}
	decision.Action = Action(strings.ToLower(strings.TrimSpace(string(decision.Action))))
	decision.Source = SourceGemini

	return &decision, nil
}
