package corrector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/torresnicolas0/clima-chatbot/src/models"
)

const correctionPrompt = `Eres un corrector ortográfico y gramatical de español.
Revisa el texto entre las marcas <texto> y devuelve SOLO un arreglo JSON con las
correcciones necesarias, con la forma [{"original": "...", "replacement": "..."}].
"original" debe copiarse exactamente del texto. No corrijas nombres de ciudades.
Si no hay errores devuelve [].

<texto>%s</texto>`

const contextRadius = 20

// LLMCorrector asks a language model for corrections.
type LLMCorrector struct {
	generator models.TextGenerator
}

func NewLLMCorrector(generator models.TextGenerator) *LLMCorrector {
	return &LLMCorrector{generator: generator}
}

type llmSuggestion struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
}

func (c *LLMCorrector) Check(ctx context.Context, text string) ([]models.Correction, error) {
	raw, err := c.generator.Generate(ctx, fmt.Sprintf(correctionPrompt, text))
	if err != nil {
		return nil, fmt.Errorf("llm correction failed: %w", err)
	}

	suggestions, err := parseSuggestions(raw)
	if err != nil {
		return nil, err
	}

	runes := []rune(text)
	var corrections []models.Correction
	searchFrom := 0
	for _, s := range suggestions {
		if s.Original == "" || s.Original == s.Replacement {
			continue
		}
		idx := strings.Index(text[searchFrom:], s.Original)
		if idx < 0 {
			continue
		}
		byteOffset := searchFrom + idx
		offset := utf8.RuneCountInString(text[:byteOffset])
		length := utf8.RuneCountInString(s.Original)

		corrections = append(corrections, models.Correction{
			Offset:       offset,
			Length:       length,
			Context:      contextWindow(runes, offset, length, contextRadius),
			Replacements: []string{s.Replacement},
			RuleID:       "LLM",
		})
		searchFrom = byteOffset + len(s.Original)
	}
	return corrections, nil
}

func (c *LLMCorrector) Apply(text string, accepted []models.Correction) string {
	return ApplyCorrections(text, accepted)
}

// parseSuggestions extracts the JSON array from a model answer, tolerating
// surrounding prose or code fences.
func parseSuggestions(raw string) ([]llmSuggestion, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("llm answer has no JSON array: %q", truncate(raw, 80))
	}

	var suggestions []llmSuggestion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse llm corrections: %w", err)
	}
	return suggestions, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}
