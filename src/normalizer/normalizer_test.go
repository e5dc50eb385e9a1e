package normalizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/torresnicolas0/clima-chatbot/src/config"
	"github.com/torresnicolas0/clima-chatbot/src/corrector"
	"github.com/torresnicolas0/clima-chatbot/src/gazetteer"
	"github.com/torresnicolas0/clima-chatbot/src/mocks"
	"github.com/torresnicolas0/clima-chatbot/src/models"
	"github.com/torresnicolas0/clima-chatbot/src/nlp"
)

func setupNormalizer(iterations int) (*TextNormalizer, *mocks.MockCorrector) {
	cities := gazetteer.New("madrid", "sale")
	c := new(mocks.MockCorrector)
	cfg := &config.PipelineConfig{MaxCorrectionIterations: iterations}
	return NewTextNormalizer(cfg, c, nlp.NewRulePipeline(cities), cities), c
}

func TestCorrect_StopsWhenNothingApplies(t *testing.T) {
	n, c := setupNormalizer(100)
	ctx := context.Background()

	fix := []models.Correction{{Offset: 5, Length: 4, Context: "como esta el tiempo", Replacements: []string{"está"}}}
	c.On("Check", mock.Anything, "como esta el tiempo").Return(fix, nil).Once()
	c.On("Apply", "como esta el tiempo", fix).Return("como está el tiempo").Once()
	c.On("Check", mock.Anything, "como está el tiempo").Return([]models.Correction{}, nil).Once()

	out, err := n.Correct(ctx, "como esta el tiempo", 100)

	require.NoError(t, err)
	assert.Equal(t, "como está el tiempo", out)
	c.AssertExpectations(t)
}

func TestCorrect_IsBoundedByIterationCap(t *testing.T) {
	n, c := setupNormalizer(100)

	endless := []models.Correction{{Offset: 0, Length: 1, Context: "x", Replacements: []string{"y"}}}
	c.On("Check", mock.Anything, mock.Anything).Return(endless, nil)
	c.On("Apply", mock.Anything, mock.Anything).Return("x")

	out, err := n.Correct(context.Background(), "x", 7)

	require.NoError(t, err)
	assert.Equal(t, "x", out)
	c.AssertNumberOfCalls(t, "Check", 7)
	c.AssertNumberOfCalls(t, "Apply", 7)
}

func TestCorrect_DropsSuggestionsAroundCityNames(t *testing.T) {
	n, c := setupNormalizer(100)

	cityFix := []models.Correction{{Offset: 22, Length: 6, Context: "...el clima en Madrid", Replacements: []string{"Madrugada"}}}
	c.On("Check", mock.Anything, mock.Anything).Return(cityFix, nil).Once()

	out, err := n.Correct(context.Background(), "Como esta el clima en Madrid", 100)

	require.NoError(t, err)
	assert.Equal(t, "Como esta el clima en Madrid", out)
	c.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
}

func TestCorrect_KeepsOtherSuggestionsInSamePass(t *testing.T) {
	n, c := setupNormalizer(100)

	keep := models.Correction{Offset: 0, Length: 3, Context: "que tal", Replacements: []string{"qué"}}
	drop := models.Correction{Offset: 10, Length: 4, Context: "sale el sol", Replacements: []string{"salé"}}
	c.On("Check", mock.Anything, "que tal, sale el sol").Return([]models.Correction{keep, drop}, nil).Once()
	c.On("Apply", "que tal, sale el sol", []models.Correction{keep}).Return("qué tal, sale el sol").Once()
	c.On("Check", mock.Anything, "qué tal, sale el sol").Return([]models.Correction{drop}, nil).Once()

	out, err := n.Correct(context.Background(), "que tal, sale el sol", 100)

	require.NoError(t, err)
	assert.Equal(t, "qué tal, sale el sol", out)
	c.AssertExpectations(t)
}

func TestCorrect_PropagatesCorrectorFailure(t *testing.T) {
	n, c := setupNormalizer(100)
	c.On("Check", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := n.Correct(context.Background(), "hola", 100)

	assert.Error(t, err)
}

func TestNormalize_SplitsCorrectedText(t *testing.T) {
	cities := gazetteer.New("madrid", "lima")
	n := NewTextNormalizer(&config.PipelineConfig{}, corrector.Noop{}, nlp.NewRulePipeline(cities), cities)

	sentences, err := n.Normalize(context.Background(), "  ¿Temperatura en Lima?   Clima en Madrid.  ")

	require.NoError(t, err)
	assert.Equal(t, []models.Sentence{
		{Text: "¿Temperatura en Lima?"},
		{Text: "Clima en Madrid."},
	}, sentences)
	assert.Equal(t, DefaultMaxIterations, n.maxIterations)
}

func TestNormalize_SegmentationFailure(t *testing.T) {
	cities := gazetteer.New("madrid")
	pipeline := new(mocks.MockLanguagePipeline)
	pipeline.On("SegmentSentences", mock.Anything, mock.Anything).Return(nil, errors.New("model missing"))

	n := NewTextNormalizer(&config.PipelineConfig{}, corrector.Noop{}, pipeline, cities)
	_, err := n.Normalize(context.Background(), "hola")

	assert.Error(t, err)
}
