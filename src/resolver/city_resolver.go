package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/torresnicolas0/clima-chatbot/src/models"
)

// Tokens the entity tagger mislabels as places in ordinary Spanish questions.
var alwaysExcluded = map[string]struct{}{
	"como": {},
	"sale": {},
}

// CityResolver keeps the GPE entities of a sentence that are known cities.
type CityResolver struct {
	pipeline models.LanguagePipeline
	cities   models.CityIndex
}

func NewCityResolver(pipeline models.LanguagePipeline, cities models.CityIndex) *CityResolver {
	return &CityResolver{pipeline: pipeline, cities: cities}
}

// Resolve returns each matched city once, in order of first mention.
func (r *CityResolver) Resolve(ctx context.Context, sentence string) ([]models.CityMatch, error) {
	lower := strings.ToLower(sentence)
	trimmed := strings.TrimSpace(lower)
	startsWithHow := strings.HasPrefix(trimmed, "como ") || strings.HasPrefix(trimmed, "¿como ")

	entities, err := r.pipeline.TagEntities(ctx, lower)
	if err != nil {
		return nil, fmt.Errorf("entity tagging failed: %w", err)
	}

	var matches []models.CityMatch
	seen := make(map[string]struct{})
	for _, ent := range entities {
		if ent.Label != models.LabelGPE {
			continue
		}
		name := strings.ToLower(ent.Text)
		if _, excluded := alwaysExcluded[name]; excluded {
			continue
		}
		if startsWithHow && name == "como" {
			continue
		}
		if !r.cities.Contains(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		matches = append(matches, models.CityMatch(name))
	}
	return matches, nil
}
