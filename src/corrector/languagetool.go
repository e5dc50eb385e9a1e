package corrector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/torresnicolas0/clima-chatbot/src/config"
	"github.com/torresnicolas0/clima-chatbot/src/models"
	"github.com/torresnicolas0/clima-chatbot/src/resilience"
)

// LanguageTool checks text against a LanguageTool server (/v2/check).
type LanguageTool struct {
	baseURL  string
	language string
	httpCfg  resilience.HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
}

type checkResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Context struct {
			Text string `json:"text"`
		} `json:"context"`
		Rule struct {
			ID string `json:"id"`
		} `json:"rule"`
	} `json:"matches"`
}

func NewLanguageTool(cfg *config.CorrectorConfig) *LanguageTool {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	language := cfg.Language
	if language == "" {
		language = "es"
	}

	return &LanguageTool{
		baseURL:  strings.TrimSuffix(cfg.URL, "/"),
		language: language,
		httpCfg: resilience.HTTPClientConfig{
			Client: &http.Client{Timeout: timeout},
			Backoff: resilience.BackoffConfig{
				MaxRetries:      1,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     time.Second,
			},
		},
		circuit: resilience.NewBreaker("languagetool"),
	}
}

func (lt *LanguageTool) Check(ctx context.Context, text string) ([]models.Correction, error) {
	buildRequest := func() (*http.Request, error) {
		form := url.Values{}
		form.Set("text", text)
		form.Set("language", lt.language)

		req, err := http.NewRequest(http.MethodPost, lt.baseURL+"/v2/check", strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := resilience.DoRequest(ctx, lt.httpCfg, lt.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("languagetool check failed: %w", err)
	}
	defer resp.Body.Close()

	var payload checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode languagetool response: %w", err)
	}

	corrections := make([]models.Correction, 0, len(payload.Matches))
	for _, m := range payload.Matches {
		c := models.Correction{
			Offset:  m.Offset,
			Length:  m.Length,
			Context: m.Context.Text,
			Message: m.Message,
			RuleID:  m.Rule.ID,
		}
		for _, r := range m.Replacements {
			c.Replacements = append(c.Replacements, r.Value)
		}
		corrections = append(corrections, c)
	}
	return corrections, nil
}

func (lt *LanguageTool) Apply(text string, accepted []models.Correction) string {
	return ApplyCorrections(text, accepted)
}

// Noop never proposes corrections.
type Noop struct{}

func (Noop) Check(ctx context.Context, text string) ([]models.Correction, error) {
	return nil, ctx.Err()
}

func (Noop) Apply(text string, accepted []models.Correction) string {
	return ApplyCorrections(text, accepted)
}
