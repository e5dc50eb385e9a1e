package models

import (
	"context"
)

// Corrector proposes and applies grammar/spelling corrections.
type Corrector interface {
	Check(ctx context.Context, text string) ([]Correction, error)
	Apply(text string, accepted []Correction) string
}

// LanguagePipeline provides sentence segmentation, entity tagging and
// lemmatization for Spanish text.
type LanguagePipeline interface {
	SegmentSentences(ctx context.Context, text string) ([]string, error)
	TagEntities(ctx context.Context, text string) ([]Entity, error)
	// LemmatizeFiltered drops stop-words and non-alphabetic tokens and emits a
	// lemma twice when its surface token is in keywords.
	LemmatizeFiltered(ctx context.Context, text string, keywords map[string]struct{}) ([]string, error)
}

// Vectorizer maps lemmas onto a fixed, pre-fit vocabulary.
type Vectorizer interface {
	Transform(tokens []string) []float64
}

// Classifier returns per-intent probabilities for a feature vector.
type Classifier interface {
	PredictProbabilities(ctx context.Context, features []float64) (map[IntentKind]float64, error)
}

// WeatherProvider fetches current weather for a city name.
type WeatherProvider interface {
	Fetch(ctx context.Context, city, apiKey, units, language string) (*WeatherRecord, error)
}

// TextGenerator completes a single prompt with a language model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CityIndex answers gazetteer membership questions.
type CityIndex interface {
	Contains(name string) bool
	MentionedIn(text string) bool
}

// SentenceNormalizer corrects raw text and splits it into sentences.
type SentenceNormalizer interface {
	Normalize(ctx context.Context, text string) ([]Sentence, error)
}

// IntentRouter classifies a sentence and decides whether the intent is usable.
type IntentRouter interface {
	Route(ctx context.Context, sentence string) (*RoutingDecision, error)
}

// CityResolver extracts known city names mentioned in a sentence.
type CityResolver interface {
	Resolve(ctx context.Context, sentence string) ([]CityMatch, error)
}

// ResponseSynthesizer renders the answer for one (city, intent) pair.
type ResponseSynthesizer interface {
	Synthesize(ctx context.Context, city CityMatch, intent IntentKind) string
}

// WeatherSource returns a weather record, cached or fresh.
type WeatherSource interface {
	GetOrFetch(ctx context.Context, city, units, language string) (*WeatherRecord, error)
}

// QueryProcessor is the single entry point used by every front-end.
type QueryProcessor interface {
	Run(ctx context.Context, text string) *QueryResult
	Process(ctx context.Context, text string) string
}

// CacheStatsReporter exposes weather cache counters.
type CacheStatsReporter interface {
	Stats(ctx context.Context) CacheStats
}
