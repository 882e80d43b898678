package decision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/KirkDiggler/cluedo-engine/internal/entities"
	"github.com/KirkDiggler/cluedo-engine/internal/errors"
)

// SourceHTTP marks decisions returned by the HTTP provider
const SourceHTTP = "http"

// maxResponseBytes caps how much of a decision response is read
const maxResponseBytes = 1 << 20

// HTTPConfig configures the remote decision service client
type HTTPConfig struct {
	// BaseURL of the service, e.g. http://localhost:8080
	BaseURL string

	// Token is sent as a bearer token for saved games (games with an ID)
	Token string

	// Client defaults to http.DefaultClient
	Client *http.Client
}

// Validate ensures the configuration is usable
func (c *HTTPConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("BaseURL", c.BaseURL, vb)
	if c.BaseURL != "" {
		if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			vb.InvalidField("BaseURL", "must be an absolute URL")
		}
	}

	return vb.Build()
}

// HTTPProvider asks a remote service for decisions. The service receives
// the character, the dice, the legal moves and the redacted game state.
type HTTPProvider struct {
	baseURL string
	token   string
	client  *http.Client
}

var _ Provider = (*HTTPProvider)(nil)

// NewHTTPProvider creates the remote decision client
func NewHTTPProvider(cfg *HTTPConfig) (*HTTPProvider, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		client:  client,
	}, nil
}

type aiTurnRequest struct {
	Character     *entities.Character   `json:"character"`
	DiceResult    entities.DiceResult   `json:"diceResult"`
	PossibleMoves []entities.MoveOption `json:"possibleMoves"`
	GameState     *entities.GameState   `json:"gameState"`
}

// Decide posts the turn to the service and decodes its answer. The answer
// is not checked against the legal moves here; WithFallback does that.
func (p *HTTPProvider) Decide(ctx context.Context, input *DecideInput) (*Decision, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	body, err := json.Marshal(aiTurnRequest{
		Character:     input.Character,
		DiceResult:    input.Dice,
		PossibleMoves: input.PossibleMoves,
		GameState:     input.State,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode ai turn request")
	}

	gameID := ""
	if input.State != nil {
		gameID = input.State.GameID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(gameID), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build ai turn request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if p.token != "" && gameID != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "decision service unreachable")
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Debug("Failed to close decision response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Newf(errors.CodeFromHTTPStatus(resp.StatusCode),
			"decision service returned %d", resp.StatusCode).
			WithMeta("status", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read decision response")
	}

	var decision Decision
	if err := json.Unmarshal(data, &decision); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode decision response")
	}
	decision.Source = SourceHTTP

	return &decision, nil
}

func (p *HTTPProvider) endpoint(gameID string) string {
	if gameID == "" {
		return p.baseURL + "/api/games/ai-turn"
	}
	return fmt.Sprintf("%s/api/games/%s/ai-turn", p.baseURL, url.PathEscape(gameID))
}
