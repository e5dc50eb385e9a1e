package nlp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torresnicolas0/clima-chatbot/src/gazetteer"
	"github.com/torresnicolas0/clima-chatbot/src/models"
)

func newTestPipeline() *RulePipeline {
	return NewRulePipeline(gazetteer.New("madrid", "buenos aires", "como", "st. louis", "parís", "lima"))
}

func TestSegmentSentences(t *testing.T) {
	p := newTestPipeline()
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "Como esta el clima en Madrid?", []string{"Como esta el clima en Madrid?"}},
		{"two questions", "¿Hace frío en Lima? ¿Y en Madrid?", []string{"¿Hace frío en Lima?", "¿Y en Madrid?"}},
		{"no space before opening mark", "Hola!¿Llueve en París?", []string{"Hola!", "¿Llueve en París?"}},
		{"decimal number", "Hay 3.5 grados en Lima. Gracias", []string{"Hay 3.5 grados en Lima.", "Gracias"}},
		{"repeated terminators", "Que calor!!! Y en Madrid?", []string{"Que calor!!!", "Y en Madrid?"}},
		{"line breaks", "temperatura en Lima\n\nclima en Madrid", []string{"temperatura en Lima", "clima en Madrid"}},
		{"blank", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.SegmentSentences(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagEntities_LongestMatch(t *testing.T) {
	p := newTestPipeline()

	entities, err := p.TagEntities(context.Background(), "clima en buenos aires y en st. louis")

	require.NoError(t, err)
	assert.Equal(t, []models.Entity{
		{Text: "buenos aires", Label: models.LabelGPE},
		{Text: "st. louis", Label: models.LabelGPE},
	}, entities)
}

func TestTagEntities_KeepsSurfaceText(t *testing.T) {
	p := newTestPipeline()

	entities, err := p.TagEntities(context.Background(), "Como esta el clima en Madrid?")

	require.NoError(t, err)
	assert.Equal(t, []models.Entity{
		{Text: "Como", Label: models.LabelGPE},
		{Text: "Madrid", Label: models.LabelGPE},
	}, entities)
}

func TestTagEntities_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline().TagEntities(ctx, "Madrid")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLemmatizeFiltered(t *testing.T) {
	p := newTestPipeline()

	lemmas, err := p.LemmatizeFiltered(context.Background(), "¿Cuál es la temperatura en Madrid hoy 25?", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"temperatura", "madrid", "hoy"}, lemmas)
}

func TestLemmatizeFiltered_KeywordDuplication(t *testing.T) {
	p := newTestPipeline()
	keywords := map[string]struct{}{"temperatura": {}}

	lemmas, err := p.LemmatizeFiltered(context.Background(), "temperatura Temperatura lluvia", keywords)

	require.NoError(t, err)
	assert.Equal(t, []string{"temperatura", "temperatura", "temperatura", "lluvia"}, lemmas)
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("como"))
	assert.True(t, IsStopWord("qué"))
	assert.False(t, IsStopWord("clima"))
}
