package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
)

const minimalTables = `
default_base_yield: Unknown
crops:
  - id: millet
    name: Millet
    requirements:
      n: {min: 40, max: 60}
      p: {min: 20, max: 30}
      k: {min: 20, max: 30}
fertilizers:
  - {id: urea, name: Urea, content: {n: 46, p: 0, k: 0}, unit_cost: 6}
  - {id: dap, name: DAP, content: {n: 18, p: 46, k: 0}, unit_cost: 25}
  - {id: mop, name: MOP, content: {n: 0, p: 0, k: 60}, unit_cost: 18}
  - {id: npk_complex, name: NPK, content: {n: 10, p: 26, k: 26}, unit_cost: 22}
regions:
  - {id: sahel, name: Sahel, multiplier: {n: 1.2, p: 1, k: 1}}
`

func TestDefaultCatalog(t *testing.T) {
	catalog := Default()
	require.NotNil(t, catalog)

	assert.Equal(t, []string{"cotton", "maize", "potato", "rice", "sugarcane", "tomato", "wheat"}, catalog.CropIDs())
	assert.Len(t, catalog.Fertilizers(), 6)
	assert.Len(t, catalog.Regions(), 6)

	rice, ok := catalog.Crop("rice")
	require.True(t, ok)
	assert.Equal(t, "Rice", rice.Name)
	assert.Equal(t, 110.0, rice.Requirements.N.Midpoint())
	assert.Len(t, rice.GrowthStages, 5)
	assert.NotEmpty(t, rice.Tips)

	urea, ok := catalog.Fertilizer(models.FertilizerUrea)
	require.True(t, ok)
	assert.Equal(t, 6.5, urea.UnitCost)
	assert.Equal(t, models.NPK{N: 0.46}, urea.Fraction())

	north, ok := catalog.Region("north_india")
	require.True(t, ok)
	assert.Equal(t, models.NPK{N: 1.1, P: 1.0, K: 0.9}, north.Multiplier)

	tips := catalog.Tips()
	assert.NotEmpty(t, tips.AcidicSoil)
	assert.NotEmpty(t, tips.AlkalineSoil)
	assert.NotEmpty(t, tips.LowOrganicMatter)
	assert.NotEmpty(t, tips.WaterManagement)
	assert.NotEmpty(t, tips.IntegratedNutrientManagement)

	weather := catalog.Weather()
	assert.Equal(t, 2.5, weather.RainThresholdMM)
	assert.Contains(t, weather.UnsuitableConditions, "Thunderstorm")

	assert.Same(t, catalog, Default())
}

func TestCatalogPreservesTableOrder(t *testing.T) {
	crops := Default().Crops()
	require.NotEmpty(t, crops)
	assert.Equal(t, models.CropID("rice"), crops[0].ID)

	fertilizers := Default().Fertilizers()
	assert.Equal(t, models.FertilizerUrea, fertilizers[0].ID)
}

func TestBaseYield(t *testing.T) {
	catalog := Default()
	assert.Equal(t, "4-5 tons/ha", catalog.BaseYield("rice"))
	assert.Equal(t, "Average for crop", catalog.BaseYield("sorghum"))
}

func TestParseMinimalTables(t *testing.T) {
	catalog, err := Parse([]byte(minimalTables))
	require.NoError(t, err)

	assert.Equal(t, []string{"millet"}, catalog.CropIDs())
	assert.Equal(t, "Unknown", catalog.BaseYield("millet"))
	_, ok := catalog.Fertilizer(models.FertilizerSSP)
	assert.False(t, ok)
}

func TestParseRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed yaml", "crops: ["},
		{"no crops", `
fertilizers:
  - {id: urea, content: {n: 46}}
  - {id: dap, content: {n: 18, p: 46}}
  - {id: mop, content: {k: 60}}
  - {id: npk_complex, content: {n: 10, p: 26, k: 26}}
`},
		{"missing mop", `
crops: [{id: millet}]
fertilizers:
  - {id: urea, content: {n: 46}}
  - {id: dap, content: {n: 18, p: 46}}
  - {id: npk_complex, content: {n: 10, p: 26, k: 26}}
`},
		{"complex without potassium", `
crops: [{id: millet}]
fertilizers:
  - {id: urea, content: {n: 46}}
  - {id: dap, content: {n: 18, p: 46}}
  - {id: mop, content: {k: 60}}
  - {id: npk_complex, content: {n: 10, p: 26, k: 0}}
`},
		{"duplicate crop", `
crops: [{id: millet}, {id: millet}]
`},
		{"crop without id", `
crops: [{name: Mystery}]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.name != "malformed yaml" {
				assert.ErrorIs(t, err, ErrInvalidTables)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns default", func(t *testing.T) {
		catalog, err := Load("")
		require.NoError(t, err)
		assert.Same(t, Default(), catalog)
	})

	t.Run("file override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tables.yaml")
		require.NoError(t, os.WriteFile(path, []byte(minimalTables), 0o600))

		catalog, err := Load(path)
		require.NoError(t, err)
		region, ok := catalog.Region("sahel")
		require.True(t, ok)
		assert.Equal(t, 1.2, region.Multiplier.N)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
