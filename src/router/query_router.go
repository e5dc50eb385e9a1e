package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/torresnicolas0/clima-chatbot/src/config"
	"github.com/torresnicolas0/clima-chatbot/src/models"
)

var ErrNoProbabilities = errors.New("classifier returned no probabilities")

// QueryRouter turns a sentence into an intent: lemmas from the language
// pipeline, counts from the fixed vocabulary, probabilities from the
// classifier. The strategy then decides whether the intent is trusted.
type QueryRouter struct {
	pipeline   models.LanguagePipeline
	vectorizer models.Vectorizer
	classifier models.Classifier
	keywords   map[string]struct{}
	strategy   RoutingStrategy
}

func NewQueryRouter(
	cfg *config.PipelineConfig,
	pipeline models.LanguagePipeline,
	vectorizer models.Vectorizer,
	classifier models.Classifier,
	keywords map[string]struct{},
) *QueryRouter {
	return &QueryRouter{
		pipeline:   pipeline,
		vectorizer: vectorizer,
		classifier: classifier,
		keywords:   keywords,
		strategy:   NewConfidenceStrategy(cfg.ConfidenceThreshold),
	}
}

func (r *QueryRouter) Route(ctx context.Context, sentence string) (*models.RoutingDecision, error) {
	result, err := r.Classify(ctx, sentence)
	if err != nil {
		return nil, err
	}

	return r.strategy.Decide(result), nil
}

// Classify returns the most probable intent. Ties keep the intent listed
// first in models.AllIntents.
func (r *QueryRouter) Classify(ctx context.Context, sentence string) (models.ClassificationResult, error) {
	lemmas, err := r.pipeline.LemmatizeFiltered(ctx, sentence, r.keywords)
	if err != nil {
		return models.ClassificationResult{}, fmt.Errorf("lemmatization failed: %w", err)
	}

	probs, err := r.classifier.PredictProbabilities(ctx, r.vectorizer.Transform(lemmas))
	if err != nil {
		return models.ClassificationResult{}, fmt.Errorf("classification failed: %w", err)
	}

	best := models.ClassificationResult{Confidence: -1}
	for _, kind := range models.AllIntents {
		p, ok := probs[kind]
		if !ok {
			continue
		}
		if p > best.Confidence {
			best = models.ClassificationResult{Intent: kind, Confidence: p}
		}
	}
	if best.Confidence < 0 {
		return models.ClassificationResult{}, ErrNoProbabilities
	}
	return best, nil
}
