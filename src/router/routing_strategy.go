package router

import (
	"fmt"

	"github.com/torresnicolas0/clima-chatbot/src/models"
)

// DefaultConfidenceThreshold is the minimum probability an intent needs to be
// answered.
const DefaultConfidenceThreshold = 0.5

type RoutingStrategy interface {
	Decide(result models.ClassificationResult) *models.RoutingDecision
}

type ConfidenceStrategy struct {
	threshold float64
}

func NewConfidenceStrategy(threshold float64) *ConfidenceStrategy {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &ConfidenceStrategy{threshold: threshold}
}

func (s *ConfidenceStrategy) Decide(result models.ClassificationResult) *models.RoutingDecision {
	decision := &models.RoutingDecision{
		Intent:     result.Intent,
		Confidence: result.Confidence,
	}

	if result.Confidence < s.threshold {
		decision.Reason = fmt.Sprintf("confidence %.2f below threshold %.2f", result.Confidence, s.threshold)
		return decision
	}

	decision.Accepted = true
	decision.Reason = fmt.Sprintf("%s with confidence %.2f", result.Intent, result.Confidence)
	return decision
}
