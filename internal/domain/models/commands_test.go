package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  CommandType
		args  []string
	}{
		{"/recommend rice 20 10 15 6.5", CommandRecommend, []string{"rice", "20", "10", "15", "6.5"}},
		{"  REC Wheat 1 2 3 7 North_India ", CommandRecommend, []string{"wheat", "1", "2", "3", "7", "north_india"}},
		{"/crops", CommandCrops, nil},
		{"help", CommandHelp, nil},
		{"/start", CommandHelp, nil},
		{"hello there", CommandUnknown, []string{"there"}},
		{"", CommandUnknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := ParseCommand(tt.input)
			assert.Equal(t, tt.want, cmd.Type)
			assert.Equal(t, tt.args, cmd.Args)
			assert.Equal(t, tt.input, cmd.Raw)
		})
	}
}

func TestNutrientHelpers(t *testing.T) {
	assert.Equal(t, 55.0, NutrientRange{Min: 50, Max: 60}.Midpoint())
	assert.Equal(t, NPK{N: 2, P: 6, K: 12}, NPK{N: 1, P: 2, K: 3}.Scale(NPK{N: 2, P: 3, K: 4}))

	dap := FertilizerSpec{Content: NPK{N: 18, P: 46}}
	assert.InDelta(t, 0.18, dap.Fraction().N, 1e-12)
	assert.InDelta(t, 0.46, dap.Fraction().P, 1e-12)
	assert.Zero(t, dap.Fraction().K)
}
