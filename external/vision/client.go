// Package vision calls a Gemini-style multimodal endpoint to extract a
// best-effort box score from a photographed score sheet or scoreboard.
package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/palabianco/basketstats/internal/platform/logging"
	"github.com/palabianco/basketstats/internal/platform/resilience"
	"github.com/palabianco/basketstats/internal/usecase"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-3-pro-preview"
)

var errVisionTransient = crerr.New("vision transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	model          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 60 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		model:          model,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type generatePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *inlineDataPart `json:"inline_data,omitempty"`
}

type inlineDataPart struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateRequest struct {
	Contents []struct {
		Parts []generatePart `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"response_mime_type"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnalyzeScoreSheet sends the sheet image plus the roster context and decodes
// the model's JSON array of partial stat rows. Rows keyed to IDs outside the
// supplied roster are dropped.
func (c *Client) AnalyzeScoreSheet(ctx context.Context, imageJPEG []byte, roster []usecase.VisionRosterEntry) ([]usecase.VisionStatExtract, error) {
	if len(imageJPEG) == 0 {
		return nil, fmt.Errorf("%w: score sheet image is empty", usecase.ErrInvalidInput)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: roster context is empty", usecase.ErrInvalidInput)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "vision circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: vision service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	body, err := c.buildRequestBody(imageJPEG, roster)
	if err != nil {
		return nil, err
	}

	raw, reqErr := c.executeRequest(ctx, body)
	if c.circuitEnabled {
		if reqErr != nil && crerr.Is(reqErr, errVisionTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if reqErr != nil {
		return nil, reqErr
	}

	return c.decodeExtracts(raw, roster)
}

func buildPrompt(roster []usecase.VisionRosterEntry) string {
	contextParts := make([]string, 0, len(roster))
	for _, entry := range roster {
		contextParts = append(contextParts, fmt.Sprintf("#%d %s (ID: %s)", entry.Number, entry.Name, entry.PlayerID))
	}

	var b strings.Builder
	b.WriteString("Analyze this basketball score sheet image (or scoreboard).\n")
	b.WriteString("Extract the statistics for the players listed here: ")
	b.WriteString(strings.Join(contextParts, ", "))
	b.WriteString(".\n\n")
	b.WriteString("If the image contains data for players not in my list, ignore them.\n")
	b.WriteString("Return a JSON array of objects with fields playerId, points, minutes, twoPtMade, twoPtAtt, threePtMade, threePtAtt, ftMade, ftAtt, rebOff, rebDef, assists, turnovers, steals, blocksMade, foulsCommitted, valuation, plusMinus.\n")
	b.WriteString("playerId and points are required; use the provided Player ID. ")
	b.WriteString("Estimate missing values if the image is a simple scoreboard. ")
	b.WriteString("Set minutes to \"00:00:00\" if not visible.")
	return b.String()
}

func (c *Client) buildRequestBody(imageJPEG []byte, roster []usecase.VisionRosterEntry) ([]byte, error) {
	var req generateRequest
	req.Contents = make([]struct {
		Parts []generatePart `json:"parts"`
	}, 1)
	req.Contents[0].Parts = []generatePart{
		{InlineData: &inlineDataPart{
			MimeType: "image/jpeg",
			Data:     base64.StdEncoding.EncodeToString(imageJPEG),
		}},
		{Text: buildPrompt(roster)},
	}
	req.GenerationConfig.ResponseMimeType = "application/json"

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode vision request: %w", err)
	}
	if _, err := buf.Write(encoded); err != nil {
		return nil, fmt.Errorf("buffer vision request: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func (c *Client) executeRequest(ctx context.Context, body []byte) ([]byte, error) {
	fullURL := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, strings.NewReader(string(body)))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("content-type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errVisionTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errVisionTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: vision status=%d body=%s", errVisionTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("vision status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("vision request failed")
	}
	c.logger.WarnContext(ctx, "vision request failed", "model", c.model, "error", lastErr)
	return nil, lastErr
}

func (c *Client) decodeExtracts(raw []byte, roster []usecase.VisionRosterEntry) ([]usecase.VisionStatExtract, error) {
	var envelope generateResponse
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode vision envelope: %w", err)
	}

	var text string
	for _, candidate := range envelope.Candidates {
		for _, part := range candidate.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				text = part.Text
				break
			}
		}
		if text != "" {
			break
		}
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: vision service returned no content", usecase.ErrDependencyUnavailable)
	}

	var extracts []usecase.VisionStatExtract
	if err := sonic.Unmarshal([]byte(text), &extracts); err != nil {
		return nil, fmt.Errorf("decode vision stat rows: %w", err)
	}

	known := make(map[string]struct{}, len(roster))
	for _, entry := range roster {
		known[entry.PlayerID] = struct{}{}
	}

	out := make([]usecase.VisionStatExtract, 0, len(extracts))
	for _, item := range extracts {
		if _, ok := known[item.PlayerID]; !ok {
			c.logger.Warn("vision returned row for unknown player id", "player_id", item.PlayerID)
			continue
		}
		if item.Minutes == "" {
			item.Minutes = "00:00:00"
		}
		out = append(out, item)
	}
	return out, nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 300 {
		return text[:300] + "..."
	}
	return text
}
