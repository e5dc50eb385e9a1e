package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/torresnicolas0/clima-chatbot/src/gazetteer"
	"github.com/torresnicolas0/clima-chatbot/src/mocks"
	"github.com/torresnicolas0/clima-chatbot/src/models"
	"github.com/torresnicolas0/clima-chatbot/src/nlp"
)

func newResolver() *CityResolver {
	cities := gazetteer.New("madrid", "como", "sale", "lima", "buenos aires", "parís")
	return NewCityResolver(nlp.NewRulePipeline(cities), cities)
}

func TestResolve_InterrogativeComoIsNotACity(t *testing.T) {
	cities, err := newResolver().Resolve(context.Background(), "Como esta el clima en Madrid?")

	require.NoError(t, err)
	assert.Equal(t, []models.CityMatch{"madrid"}, cities)
}

func TestResolve_SaleIsNeverACity(t *testing.T) {
	cities, err := newResolver().Resolve(context.Background(), "¿A qué hora sale el sol en Lima?")

	require.NoError(t, err)
	assert.Equal(t, []models.CityMatch{"lima"}, cities)
}

func TestResolve_ComoIsAlwaysExcluded(t *testing.T) {
	cities, err := newResolver().Resolve(context.Background(), "Temperatura en Como")

	require.NoError(t, err)
	assert.Empty(t, cities)
}

func TestResolve_MultipleCitiesDeduplicated(t *testing.T) {
	cities, err := newResolver().Resolve(context.Background(), "Clima en Buenos Aires, París y otra vez buenos aires")

	require.NoError(t, err)
	assert.Equal(t, []models.CityMatch{"buenos aires", "parís"}, cities)
}

func TestResolve_NoCity(t *testing.T) {
	cities, err := newResolver().Resolve(context.Background(), "¿Qué temperatura hace?")

	require.NoError(t, err)
	assert.Empty(t, cities)
}

func TestResolve_FiltersEntitiesOutsideGazetteer(t *testing.T) {
	pipeline := new(mocks.MockLanguagePipeline)
	pipeline.On("TagEntities", mock.Anything, "clima en narnia y madrid").Return([]models.Entity{
		{Text: "narnia", Label: models.LabelGPE},
		{Text: "madrid", Label: "LOC"},
		{Text: "Madrid", Label: models.LabelGPE},
	}, nil)

	r := NewCityResolver(pipeline, gazetteer.New("madrid"))
	cities, err := r.Resolve(context.Background(), "Clima en Narnia y Madrid")

	require.NoError(t, err)
	assert.Equal(t, []models.CityMatch{"madrid"}, cities)
	pipeline.AssertExpectations(t)
}

func TestResolve_TaggerFailure(t *testing.T) {
	pipeline := new(mocks.MockLanguagePipeline)
	pipeline.On("TagEntities", mock.Anything, mock.Anything).Return(nil, errors.New("pipeline unavailable"))

	_, err := NewCityResolver(pipeline, gazetteer.New("madrid")).Resolve(context.Background(), "Madrid")

	assert.Error(t, err)
}
