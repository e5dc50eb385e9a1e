package gazetteer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_FlattensPrimaryAndAlternates(t *testing.T) {
	input := `[["Madrid", ["Madriz", "MADRID"]], ["Buenos Aires", ["BA", "Ciudad de Buenos Aires"]]]`

	g, err := Read(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, 5, g.Len())
	assert.True(t, g.Contains("madrid"))
	assert.True(t, g.Contains("Madriz"))
	assert.True(t, g.Contains("buenos aires"))
	assert.Equal(t, 4, g.MaxWords())
}

func TestRead_SkipsMalformedNames(t *testing.T) {
	input := `[[123, ["Lima"]], ["Quito", [null, 4, "San Francisco de Quito"]], "loose", []]`

	g, err := Read(strings.NewReader(input))

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"lima", "quito", "san francisco de quito"}, g.Names())
}

func TestRead_InvalidDocument(t *testing.T) {
	_, err := Read(strings.NewReader(`{"madrid": [`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.json")
	require.NoError(t, os.WriteFile(path, []byte(`[["París", ["Paris"]]]`), 0o644))

	g, err := Load(path)

	require.NoError(t, err)
	assert.True(t, g.Contains("parís"))
	assert.True(t, g.Contains("paris"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMentionedIn(t *testing.T) {
	g := New("madrid", "new york")

	assert.True(t, g.MentionedIn("Que tiempo hace en MADRID hoy"))
	assert.True(t, g.MentionedIn("clima de new york"))
	assert.False(t, g.MentionedIn("Que tiempo hace hoy"))
}
