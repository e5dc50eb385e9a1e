package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/torresnicolas0/clima-chatbot/src/classifier"
	"github.com/torresnicolas0/clima-chatbot/src/config"
	"github.com/torresnicolas0/clima-chatbot/src/mocks"
	"github.com/torresnicolas0/clima-chatbot/src/models"
)

func setupTestRouter() (*QueryRouter, *mocks.MockLanguagePipeline, *mocks.MockClassifier) {
	pipeline := new(mocks.MockLanguagePipeline)
	clf := new(mocks.MockClassifier)
	vectorizer := classifier.NewCountVectorizer([]string{"temperatura", "clima", "sol"})
	keywords := map[string]struct{}{"temperatura": {}}

	cfg := &config.PipelineConfig{ConfidenceThreshold: 0.5}
	return NewQueryRouter(cfg, pipeline, vectorizer, clf, keywords), pipeline, clf
}

func TestQueryRouter_ConfidentIntent(t *testing.T) {
	r, pipeline, clf := setupTestRouter()

	pipeline.On("LemmatizeFiltered", mock.Anything, "temperatura en Lima", mock.Anything).
		Return([]string{"temperatura", "temperatura", "lima"}, nil)
	clf.On("PredictProbabilities", mock.Anything, []float64{2, 0, 0}).
		Return(map[models.IntentKind]float64{
			models.IntentTemperature:      0.8,
			models.IntentWeatherCondition: 0.2,
		}, nil)

	decision, err := r.Route(context.Background(), "temperatura en Lima")

	require.NoError(t, err)
	assert.True(t, decision.Accepted)
	assert.Equal(t, models.IntentTemperature, decision.Intent)
	assert.Equal(t, 0.8, decision.Confidence)
	pipeline.AssertExpectations(t)
	clf.AssertExpectations(t)
}

func TestQueryRouter_PassesKeywordsToPipeline(t *testing.T) {
	r, pipeline, clf := setupTestRouter()

	pipeline.On("LemmatizeFiltered", mock.Anything, "sol", map[string]struct{}{"temperatura": {}}).
		Return([]string{"sol"}, nil)
	clf.On("PredictProbabilities", mock.Anything, mock.Anything).
		Return(map[models.IntentKind]float64{models.IntentDayNight: 1}, nil)

	_, err := r.Route(context.Background(), "sol")

	require.NoError(t, err)
	pipeline.AssertExpectations(t)
}

func TestQueryRouter_LowConfidence(t *testing.T) {
	r, pipeline, clf := setupTestRouter()

	pipeline.On("LemmatizeFiltered", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)
	clf.On("PredictProbabilities", mock.Anything, mock.Anything).
		Return(map[models.IntentKind]float64{
			models.IntentTemperature:      0.3,
			models.IntentWeatherCondition: 0.3,
			models.IntentGeolocation:      0.4,
		}, nil)

	decision, err := r.Route(context.Background(), "hola")

	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, models.IntentGeolocation, decision.Intent)
}

func TestQueryRouter_TieKeepsFirstIntent(t *testing.T) {
	r, pipeline, clf := setupTestRouter()

	pipeline.On("LemmatizeFiltered", mock.Anything, mock.Anything, mock.Anything).Return([]string{"sol"}, nil)
	clf.On("PredictProbabilities", mock.Anything, mock.Anything).
		Return(map[models.IntentKind]float64{
			models.IntentGeolocation: 0.5,
			models.IntentDayNight:    0.5,
		}, nil)

	result, err := r.Classify(context.Background(), "sol")

	require.NoError(t, err)
	assert.Equal(t, models.IntentDayNight, result.Intent)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestQueryRouter_ClassifierFailure(t *testing.T) {
	r, pipeline, clf := setupTestRouter()

	pipeline.On("LemmatizeFiltered", mock.Anything, mock.Anything, mock.Anything).Return([]string{"sol"}, nil)
	clf.On("PredictProbabilities", mock.Anything, mock.Anything).Return(nil, errors.New("model not loaded"))

	decision, err := r.Route(context.Background(), "sol")

	assert.Error(t, err)
	assert.Nil(t, decision)
}

func TestQueryRouter_PipelineFailure(t *testing.T) {
	r, pipeline, clf := setupTestRouter()

	pipeline.On("LemmatizeFiltered", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("tokenizer down"))

	_, err := r.Route(context.Background(), "sol")

	assert.Error(t, err)
	clf.AssertNotCalled(t, "PredictProbabilities", mock.Anything, mock.Anything)
}

func TestQueryRouter_EmptyProbabilities(t *testing.T) {
	r, pipeline, clf := setupTestRouter()

	pipeline.On("LemmatizeFiltered", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)
	clf.On("PredictProbabilities", mock.Anything, mock.Anything).Return(map[models.IntentKind]float64{}, nil)

	_, err := r.Classify(context.Background(), "")

	assert.ErrorIs(t, err, ErrNoProbabilities)
}
