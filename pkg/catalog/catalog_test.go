package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxygene76/celestial-lookup/internal/types"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	earth, err := c.Find("earth")
	require.NoError(t, err)
	assert.Equal(t, "terre", earth.ID)
	assert.Equal(t, "solar-system-opendata", earth.Source)
	assert.Equal(t, "⊕", earth.Symbol)
	assert.Empty(t, earth.OrbitsText())

	moon, err := c.Find("  LUNA ")
	require.NoError(t, err)
	assert.Equal(t, "Moon", moon.Name)
	assert.Equal(t, "Moon orbits Earth", moon.OrbitsText())

	assert.Equal(t, []string{"asteroid", "dwarf planet", "exoplanet", "moon", "planet"}, c.Kinds())
	assert.Equal(t, []string{"jpl-sbdb", "nasa-exoplanet-archive", "solar-system-opendata"}, c.Sources())
}

func TestFindUnknown(t *testing.T) {
	_, err := Default().Find("Vulcan")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnknownBody))
}

func TestEntriesIsACopy(t *testing.T) {
	c := Default()
	entries := c.Entries()
	entries[0].Name = "changed"
	assert.NotEqual(t, "changed", c.Entries()[0].Name)
}

func TestNewRejectsBadEntries(t *testing.T) {
	_, err := New([]Entry{{Name: "X", Source: "s"}})
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))

	_, err = New([]Entry{
		{Name: "X", Source: "s", ID: "1"},
		{Name: "Y", Aliases: []string{"x"}, Source: "s", ID: "2"},
	})
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
bodies:
  - name: Sedna
    kind: dwarf planet
    source: jpl-sbdb
    id: "90377"
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	sedna, err := c.Find("sedna")
	require.NoError(t, err)
	assert.Equal(t, "90377", sedna.ID)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	def, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, len(Default().Entries()), len(def.Entries()))
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("bodies: [::"))
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`
bodies:
  - name: Sedna
    kind: dwarf planet
    source: jpl-sbdb
    id: "90377"
    image_url: https://example.org/sedna.png
`))
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))

	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, c.Entries())
}
