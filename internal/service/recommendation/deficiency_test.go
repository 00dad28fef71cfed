package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
)

func TestCalculateDeficiency(t *testing.T) {
	req := models.NutrientRequirements{
		N: models.NutrientRange{Min: 100, Max: 120},
		P: models.NutrientRange{Min: 50, Max: 60},
		K: models.NutrientRange{Min: 50, Max: 60},
	}

	tests := []struct {
		name string
		soil models.SoilSample
		want models.NPK
	}{
		{
			name: "neutral soil",
			soil: models.SoilSample{PH: 6.5, N: 50, P: 20, K: 20, OrganicMatter: 1.5},
			want: models.NPK{N: 60, P: 35, K: 35},
		},
		{
			name: "surplus clamps to zero",
			soil: models.SoilSample{PH: 6.5, N: 150, P: 20, K: 90, OrganicMatter: 1.5},
			want: models.NPK{N: 0, P: 35, K: 0},
		},
		{
			name: "acidic soil scales every nutrient",
			soil: models.SoilSample{PH: 5.0, N: 50, P: 20, K: 20, OrganicMatter: 1.5},
			want: models.NPK{N: 72, P: 42, K: 42},
		},
		{
			name: "alkaline soil",
			soil: models.SoilSample{PH: 8.0, N: 50, P: 20, K: 20, OrganicMatter: 1.5},
			want: models.NPK{N: 66, P: 38.5, K: 38.5},
		},
		{
			name: "rich organic matter",
			soil: models.SoilSample{PH: 6.5, N: 50, P: 20, K: 20, OrganicMatter: 4},
			want: models.NPK{N: 54, P: 31.5, K: 31.5},
		},
		{
			name: "acidic and poor in organic matter",
			soil: models.SoilSample{PH: 5.0, N: 50, P: 20, K: 20, OrganicMatter: 0.3},
			want: models.NPK{N: 60 * 1.38, P: 35 * 1.38, K: 35 * 1.38},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDeficiency(req, tt.soil)
			assert.InDelta(t, tt.want.N, got.N, tolerance)
			assert.InDelta(t, tt.want.P, got.P, tolerance)
			assert.InDelta(t, tt.want.K, got.K, tolerance)
		})
	}
}

func TestMultiplierBoundariesAreExclusive(t *testing.T) {
	assert.Equal(t, 1.0, phMultiplier(5.5))
	assert.Equal(t, 1.0, phMultiplier(7.5))
	assert.Equal(t, 1.2, phMultiplier(5.49))
	assert.Equal(t, 1.1, phMultiplier(7.51))

	assert.Equal(t, 1.0, organicMatterMultiplier(0.5))
	assert.Equal(t, 1.0, organicMatterMultiplier(3.0))
	assert.Equal(t, 1.15, organicMatterMultiplier(0.49))
	assert.Equal(t, 0.9, organicMatterMultiplier(3.01))
}

func TestCalculateDeficiencyNeverNegative(t *testing.T) {
	req := models.NutrientRequirements{
		N: models.NutrientRange{Min: 10, Max: 20},
		P: models.NutrientRange{Min: 10, Max: 20},
		K: models.NutrientRange{Min: 10, Max: 20},
	}
	for _, ph := range []float64{4, 6.5, 9} {
		for _, om := range []float64{0, 1, 5} {
			got := CalculateDeficiency(req, models.SoilSample{PH: ph, N: 500, P: 500, K: 500, OrganicMatter: om})
			assert.Zero(t, got.N)
			assert.Zero(t, got.P)
			assert.Zero(t, got.K)
		}
	}
}
