package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"advisory-api/internal/config"
)

// CompletionClient calls a hosted text-generation endpoint. The contract is
// best-effort: a single attempt per call, and every failure mode (missing
// credential, network error, non-2xx status, unrecognized payload) collapses
// to an empty string so callers can fall back to heuristic advice.
type CompletionClient struct {
	baseURL      string
	model        string
	apiToken     string
	maxNewTokens int
	temperature  float64
	httpClient   *http.Client
	logger       *logrus.Logger
}

// NewCompletionClient creates a client for the configured model endpoint
func NewCompletionClient(cfg config.AdvisorConfig, logger *logrus.Logger) *CompletionClient {
	return &CompletionClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		model:        cfg.Model,
		apiToken:     cfg.APIToken,
		maxNewTokens: cfg.MaxNewTokens,
		temperature:  cfg.Temperature,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type completionRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters completionParameters `json:"parameters"`
}

type completionParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

// generatedTextPayload is the shape shared by both documented response
// variants: a list of objects or a single bare object.
type generatedTextPayload struct {
	GeneratedText *string `json:"generated_text"`
}

// Complete requests a continuation for the prompt. The returned text has any
// leading prompt echo stripped. An empty string means "no usable completion";
// it is a normal outcome, not an error.
func (c *CompletionClient) Complete(ctx context.Context, prompt string) string {
	if c.apiToken == "" {
		return ""
	}

	payload, err := json.Marshal(completionRequest{
		Inputs: prompt,
		Parameters: completionParameters{
			MaxNewTokens: c.maxNewTokens,
			Temperature:  c.temperature,
		},
	})
	if err != nil {
		c.logger.Warnf("Failed to marshal completion request: %v", err)
		return ""
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		c.logger.Warnf("Failed to create completion request: %v", err)
		return ""
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnf("Completion request failed: %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warnf("Completion endpoint returned HTTP %d", resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warnf("Failed to read completion response: %v", err)
		return ""
	}

	text, ok := decodeGeneratedText(body)
	if !ok {
		c.logger.Warn("Completion response had an unrecognized shape")
		return ""
	}

	c.logger.WithFields(logrus.Fields{
		"model":    c.model,
		"duration": time.Since(start).String(),
	}).Debug("Completion received")

	return stripPromptEcho(text, prompt)
}

// decodeGeneratedText resolves the two documented response variants
// explicitly: a sequence containing an object with a generated_text field,
// or a single object carrying that field directly. Anything else is an
// unrecognized shape.
func decodeGeneratedText(body []byte) (string, bool) {
	var list []generatedTextPayload
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) > 0 && list[0].GeneratedText != nil {
			return *list[0].GeneratedText, true
		}
		return "", false
	}

	var single generatedTextPayload
	if err := json.Unmarshal(body, &single); err == nil && single.GeneratedText != nil {
		return *single.GeneratedText, true
	}

	return "", false
}

// stripPromptEcho removes the prompt prefix models sometimes echo back
func stripPromptEcho(text, prompt string) string {
	if strings.HasPrefix(text, prompt) {
		return strings.TrimSpace(strings.TrimPrefix(text, prompt))
	}
	return text
}
