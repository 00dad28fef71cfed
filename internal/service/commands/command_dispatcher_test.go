package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
	"github.com/mamadbah2/fertiplan/internal/reference"
	"github.com/mamadbah2/fertiplan/internal/service/recommendation"
)

type recordingRecommender struct {
	*recommendation.Service
	last recommendation.Request
	err  error
}

func (r *recordingRecommender) Recommend(ctx context.Context, req recommendation.Request) (*models.RecommendationRecord, error) {
	r.last = req
	if r.err != nil {
		return nil, r.err
	}
	return r.Service.Recommend(ctx, req)
}

type memoryRegions map[string]models.RegionID

func (m memoryRegions) LastRegion(sender string) models.RegionID { return m[sender] }

func (m memoryRegions) RememberRegion(sender string, region models.RegionID) { m[sender] = region }

func newDispatcher(t *testing.T) (*Service, *recordingRecommender, memoryRegions) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	rec := &recordingRecommender{Service: recommendation.NewService(reference.Default(), nil, nil, logger)}
	regions := memoryRegions{}
	return NewService(rec, regions, logger), rec, regions
}

func TestHandleRecommend(t *testing.T) {
	svc, rec, regions := newDispatcher(t)

	reply, err := svc.HandleCommand(context.Background(), models.ParseCommand("/recommend rice 50 20 20 6.5 1.5 north_india"), "9198")
	require.NoError(t, err)

	assert.Equal(t, models.CropID("rice"), rec.last.Crop)
	assert.Equal(t, models.RegionID("north_india"), rec.last.Region)
	assert.Equal(t, "whatsapp", rec.last.Source)
	require.NotNil(t, rec.last.Soil)
	assert.Equal(t, models.SoilSample{Type: "unspecified", PH: 6.5, N: 50, P: 20, K: 20, OrganicMatter: 1.5}, *rec.last.Soil)

	assert.Contains(t, reply, "Fertilizer plan for Rice (North India)")
	assert.Contains(t, reply, "NPK Complex (10:26:26)")
	assert.Contains(t, reply, "Basal Application")
	assert.Contains(t, reply, "Estimated cost: Rs ")
	assert.Contains(t, reply, "Expected yield gain: +23% over 4-5 tons/ha")
	assert.Contains(t, reply, "Ref: ")

	assert.Equal(t, models.RegionID("north_india"), regions["9198"])
}

func TestHandleRecommendUsesRememberedRegion(t *testing.T) {
	svc, rec, regions := newDispatcher(t)
	regions["9198"] = "south_india"

	_, err := svc.HandleCommand(context.Background(), models.ParseCommand("/recommend wheat 40 20 30 7"), "9198")
	require.NoError(t, err)
	assert.Equal(t, models.RegionID("south_india"), rec.last.Region)
	assert.Zero(t, rec.last.Soil.OrganicMatter)
}

func TestHandleRecommendRegionWithoutOrganicMatter(t *testing.T) {
	svc, rec, _ := newDispatcher(t)

	_, err := svc.HandleCommand(context.Background(), models.ParseCommand("/recommend maize 40 20 30 7 east_india"), "1")
	require.NoError(t, err)
	assert.Equal(t, models.RegionID("east_india"), rec.last.Region)
	assert.Zero(t, rec.last.Soil.OrganicMatter)
}

func TestHandleRecommendInvalidArguments(t *testing.T) {
	svc, _, _ := newDispatcher(t)

	inputs := []string{
		"/recommend",
		"/recommend rice 50 20 20",
		"/recommend rice fifty 20 20 6.5",
		"/recommend rice 50 -20 20 6.5",
		"/recommend rice 50 20 20 15",
		"/recommend rice 50 20 20 nan",
		"/recommend rice 50 20 20 6.5 1.5 north_india extra",
		"/recommend rice 50 20 20 6.5 north_india extra",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := svc.HandleCommand(context.Background(), models.ParseCommand(input), "1")
			assert.ErrorIs(t, err, ErrInvalidArguments)
		})
	}
}

func TestHandleRecommendPropagatesServiceErrors(t *testing.T) {
	svc, _, _ := newDispatcher(t)

	_, err := svc.HandleCommand(context.Background(), models.ParseCommand("/recommend quinoa 50 20 20 6.5"), "1")
	assert.ErrorIs(t, err, recommendation.ErrUnknownCrop)

	svc, rec, regions := newDispatcher(t)
	rec.err = errors.New("boom")
	_, err = svc.HandleCommand(context.Background(), models.ParseCommand("/recommend rice 50 20 20 6.5 1 west_india"), "1")
	assert.EqualError(t, err, "boom")
	assert.Empty(t, regions)
}

func TestHandleCropsAndHelp(t *testing.T) {
	svc, _, _ := newDispatcher(t)

	crops, err := svc.HandleCommand(context.Background(), models.ParseCommand("/crops"), "1")
	require.NoError(t, err)
	assert.Contains(t, crops, "- rice (Rice)")
	assert.Contains(t, crops, "north_india")

	help, err := svc.HandleCommand(context.Background(), models.ParseCommand("/help"), "1")
	require.NoError(t, err)
	assert.Equal(t, HelpMessage(), help)

	_, err = svc.HandleCommand(context.Background(), models.ParseCommand("good morning"), "1")
	assert.ErrorIs(t, err, ErrUnsupportedCommand)
}

func TestFormatRecommendationWithoutPlan(t *testing.T) {
	record := &models.RecommendationRecord{
		ID:   "abc",
		Crop: "rice",
		Recommendation: models.Recommendation{
			FertilizerPlan: []models.FertilizerPlanEntry{},
		},
	}

	text := FormatRecommendation(reference.Default(), record)
	assert.Contains(t, text, "Fertilizer plan for Rice\n")
	assert.Contains(t, text, "No fertilizer required.")
	assert.NotContains(t, text, "Estimated cost")
	assert.Contains(t, text, "Ref: abc")
}
