package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/furiafan/furiabot/internal/pkg/config"
	"github.com/furiafan/furiabot/internal/pkg/models"
)

// Client talks to the external intent-classification service. The contract
// is deliberately loose: any failure (transport, auth, empty text) comes back
// as an absent IntentResult, never as an error the caller must handle.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewClient(cfg *config.NLUConfig) *Client {
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
	}
}

var absent = models.IntentResult{Absent: true}

type detectRequest struct {
	QueryInput struct {
		Text struct {
			Text         string `json:"text"`
			LanguageCode string `json:"languageCode"`
		} `json:"text"`
	} `json:"queryInput"`
}

type detectResponse struct {
	QueryResult struct {
		Intent struct {
			DisplayName string `json:"displayName"`
		} `json:"intent"`
		Parameters map[string]any `json:"parameters"`
	} `json:"queryResult"`
}

// DetectIntent classifies free text. sessionID must be stable per end user
// so the provider can keep whatever multi-turn context it maintains.
func (c *Client) DetectIntent(ctx context.Context, sessionID, text string) models.IntentResult {
	if strings.TrimSpace(text) == "" || c.baseURL == "" {
		return absent
	}

	var body detectRequest
	body.QueryInput.Text.Text = text
	body.QueryInput.Text.LanguageCode = "pt-BR"

	payload, err := json.Marshal(body)
	if err != nil {
		return absent
	}

	url := c.baseURL + "/sessions/" + sessionID + ":detectIntent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return absent
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("NLU request failed", "error", err)
		return absent
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		slog.Warn("NLU returned non-OK status", "status", resp.StatusCode)
		return absent
	}

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		slog.Warn("NLU response parse failed", "error", err)
		return absent
	}

	if out.QueryResult.Intent.DisplayName == "" {
		return absent
	}

	return models.IntentResult{
		Label: out.QueryResult.Intent.DisplayName,
		Slots: stringSlots(out.QueryResult.Parameters),
	}
}

// stringSlots flattens the provider's loosely typed parameter map. Numeric
// slot values arrive as JSON numbers and are rendered without a fraction.
func stringSlots(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		switch t := v.(type) {
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return out
}
