package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/fertiplan/internal/service/recommendation"
)

type stubSheet struct {
	rows      [][]interface{}
	err       error
	readRange string
}

func (s *stubSheet) WriteRow(context.Context, string, []interface{}) error { return nil }

func (s *stubSheet) ReadRange(_ context.Context, sheetRange string) ([][]interface{}, error) {
	s.readRange = sheetRange
	return s.rows, s.err
}

var digestNow = time.Date(2024, time.June, 14, 20, 0, 0, 0, time.UTC)

func ledgerRows() [][]interface{} {
	return [][]interface{}{
		{"Date", "ID", "Crop", "Region", "Soil", "pH", "Cost", "Gain"},
		{"2024-06-03", "old", "rice", "", "clay", "6.5", "1000", "20"},
		{"2024-06-08", "a", "rice", "north_india", "loamy", "6.5", "3753.76", "23"},
		{"2024-06-10", "b", "wheat", "", "sandy", "7.9", "2500.5", "18"},
		{"2024-06-14", "c", "rice", "south_india", "clay", "5.2", "1200", "19"},
		{"2024-06-12", "d"},
		{"not-a-date", "e", "maize", "", "clay", "6", "100", "20"},
	}
}

func TestSummarize(t *testing.T) {
	sheet := &stubSheet{rows: ledgerRows()}
	svc := NewService(sheet, zaptest.NewLogger(t))

	digest, err := svc.Summarize(context.Background(), digestNow.Add(-7*24*time.Hour), digestNow)
	require.NoError(t, err)

	assert.Equal(t, recommendation.LedgerRange, sheet.readRange)
	assert.Equal(t, 3, digest.Count)
	assert.Equal(t, map[string]int{"rice": 2, "wheat": 1}, digest.CropCounts)
	assert.InDelta(t, 7454.26, digest.TotalCost, 1e-9)
	assert.InDelta(t, 2484.75, digest.AverageCost, 1e-9)
	assert.InDelta(t, 20.0, digest.AverageGainPct, 1e-9)
	assert.Equal(t, 3, digest.SkippedRows)
}

func TestWeeklyDigest(t *testing.T) {
	svc := NewService(&stubSheet{rows: ledgerRows()}, zaptest.NewLogger(t))

	text, err := svc.WeeklyDigest(context.Background(), digestNow)
	require.NoError(t, err)

	assert.Contains(t, text, "Recommendation digest (2024-06-07-2024-06-14): 3 recommendations.")
	assert.Contains(t, text, "- rice: 2\n- wheat: 1\n")
	assert.Contains(t, text, "Total fertilizer cost Rs 7454.26 (avg Rs 2484.75 per plan).")
	assert.Contains(t, text, "Average predicted yield improvement 20.0%.")
}

func TestWeeklyDigestWithoutRecommendations(t *testing.T) {
	svc := NewService(&stubSheet{}, nil)

	text, err := svc.WeeklyDigest(context.Background(), digestNow)
	require.NoError(t, err)
	assert.Equal(t, "Recommendation digest (2024-06-07-2024-06-14): no recommendations logged.", text)
}

func TestWeeklyDigestReadError(t *testing.T) {
	svc := NewService(&stubSheet{err: errors.New("quota")}, nil)

	_, err := svc.WeeklyDigest(context.Background(), digestNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load recommendation ledger")
}
