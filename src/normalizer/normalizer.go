package normalizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/torresnicolas0/clima-chatbot/src/config"
	"github.com/torresnicolas0/clima-chatbot/src/models"
)

const DefaultMaxIterations = 100

// TextNormalizer runs correction passes until the corrector has nothing left
// to propose, then splits the text into sentences. Suggestions whose context
// mentions a known city are dropped so city names are never "fixed".
type TextNormalizer struct {
	corrector     models.Corrector
	pipeline      models.LanguagePipeline
	cities        models.CityIndex
	maxIterations int
}

func NewTextNormalizer(
	cfg *config.PipelineConfig,
	corrector models.Corrector,
	pipeline models.LanguagePipeline,
	cities models.CityIndex,
) *TextNormalizer {
	maxIterations := cfg.MaxCorrectionIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &TextNormalizer{
		corrector:     corrector,
		pipeline:      pipeline,
		cities:        cities,
		maxIterations: maxIterations,
	}
}

// Correct performs at most maxIterations check/apply passes.
func (n *TextNormalizer) Correct(ctx context.Context, text string, maxIterations int) (string, error) {
	for i := 0; i < maxIterations; i++ {
		matches, err := n.corrector.Check(ctx, text)
		if err != nil {
			return "", fmt.Errorf("correction pass %d: %w", i+1, err)
		}

		accepted := matches[:0:0]
		for _, m := range matches {
			if !n.cities.MentionedIn(m.Context) {
				accepted = append(accepted, m)
			}
		}
		if len(accepted) == 0 {
			break
		}

		text = n.corrector.Apply(text, accepted)
	}
	return text, nil
}

func (n *TextNormalizer) Normalize(ctx context.Context, text string) ([]models.Sentence, error) {
	corrected, err := n.Correct(ctx, text, n.maxIterations)
	if err != nil {
		return nil, err
	}

	segments, err := n.pipeline.SegmentSentences(ctx, corrected)
	if err != nil {
		return nil, fmt.Errorf("sentence segmentation failed: %w", err)
	}

	sentences := make([]models.Sentence, 0, len(segments))
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, models.Sentence{Text: s})
		}
	}
	return sentences, nil
}
