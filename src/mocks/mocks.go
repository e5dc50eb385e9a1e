package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/torresnicolas0/clima-chatbot/src/models"
)

// MockCorrector implements models.Corrector
type MockCorrector struct {
	mock.Mock
}

func (m *MockCorrector) Check(ctx context.Context, text string) ([]models.Correction, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Correction), args.Error(1)
}

func (m *MockCorrector) Apply(text string, accepted []models.Correction) string {
	args := m.Called(text, accepted)
	return args.String(0)
}

// MockLanguagePipeline implements models.LanguagePipeline
type MockLanguagePipeline struct {
	mock.Mock
}

func (m *MockLanguagePipeline) SegmentSentences(ctx context.Context, text string) ([]string, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLanguagePipeline) TagEntities(ctx context.Context, text string) ([]models.Entity, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Entity), args.Error(1)
}

func (m *MockLanguagePipeline) LemmatizeFiltered(ctx context.Context, text string, keywords map[string]struct{}) ([]string, error) {
	args := m.Called(ctx, text, keywords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockClassifier implements models.Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) PredictProbabilities(ctx context.Context, features []float64) (map[models.IntentKind]float64, error) {
	args := m.Called(ctx, features)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.IntentKind]float64), args.Error(1)
}

// MockWeatherProvider implements models.WeatherProvider
type MockWeatherProvider struct {
	mock.Mock
}

func (m *MockWeatherProvider) Fetch(ctx context.Context, city, apiKey, units, language string) (*models.WeatherRecord, error) {
	args := m.Called(ctx, city, apiKey, units, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeatherRecord), args.Error(1)
}

// MockWeatherSource implements models.WeatherSource
type MockWeatherSource struct {
	mock.Mock
}

func (m *MockWeatherSource) GetOrFetch(ctx context.Context, city, units, language string) (*models.WeatherRecord, error) {
	args := m.Called(ctx, city, units, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeatherRecord), args.Error(1)
}

// MockTextGenerator implements models.TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockNormalizer implements models.SentenceNormalizer
type MockNormalizer struct {
	mock.Mock
}

func (m *MockNormalizer) Normalize(ctx context.Context, text string) ([]models.Sentence, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sentence), args.Error(1)
}

// MockRouter implements models.IntentRouter
type MockRouter struct {
	mock.Mock
}

func (m *MockRouter) Route(ctx context.Context, sentence string) (*models.RoutingDecision, error) {
	args := m.Called(ctx, sentence)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoutingDecision), args.Error(1)
}

// MockResolver implements models.CityResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, sentence string) ([]models.CityMatch, error) {
	args := m.Called(ctx, sentence)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CityMatch), args.Error(1)
}

// MockSynthesizer implements models.ResponseSynthesizer
type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, city models.CityMatch, intent models.IntentKind) string {
	args := m.Called(ctx, city, intent)
	return args.String(0)
}

// MockQueryProcessor implements models.QueryProcessor
type MockQueryProcessor struct {
	mock.Mock
}

func (m *MockQueryProcessor) Run(ctx context.Context, text string) *models.QueryResult {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.QueryResult)
}

func (m *MockQueryProcessor) Process(ctx context.Context, text string) string {
	args := m.Called(ctx, text)
	return args.String(0)
}

// MockCacheStats implements models.CacheStatsReporter
type MockCacheStats struct {
	mock.Mock
}

func (m *MockCacheStats) Stats(ctx context.Context) models.CacheStats {
	args := m.Called(ctx)
	return args.Get(0).(models.CacheStats)
}
