package recommendation

import (
	"fmt"
	"math"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
)

// applicationWindow binds a dose split to a growth stage. Only fertilizers in allowed are
// scheduled; percentages may list fertilizers the filter drops.
type applicationWindow struct {
	name        string
	stageIndex  int
	method      string
	allowed     []models.FertilizerID
	percentages map[models.FertilizerID]float64
}

// The split percentages are a field heuristic and do not sum to 100 per fertilizer.
var applicationWindows = []applicationWindow{
	{
		name:       "Basal Application",
		stageIndex: 0,
		method:     "Incorporate into soil before planting/transplanting",
		allowed:    []models.FertilizerID{models.FertilizerDAP, models.FertilizerMOP, models.FertilizerNPKComplex},
		percentages: map[models.FertilizerID]float64{
			models.FertilizerDAP:        100,
			models.FertilizerMOP:        50,
			models.FertilizerNPKComplex: 50,
			models.FertilizerUrea:       20,
		},
	},
	{
		name:       "Vegetative Stage",
		stageIndex: 1,
		method:     "Side dressing or top dressing",
		allowed:    []models.FertilizerID{models.FertilizerUrea, models.FertilizerNPKComplex},
		percentages: map[models.FertilizerID]float64{
			models.FertilizerUrea:       40,
			models.FertilizerNPKComplex: 30,
			models.FertilizerMOP:        25,
		},
	},
	{
		name:       "Reproductive Stage",
		stageIndex: 2,
		method:     "Foliar spray or side dressing",
		allowed:    []models.FertilizerID{models.FertilizerUrea, models.FertilizerMOP, models.FertilizerNPKComplex},
		percentages: map[models.FertilizerID]float64{
			models.FertilizerUrea:       40,
			models.FertilizerMOP:        25,
			models.FertilizerNPKComplex: 20,
		},
	},
}

// BuildSchedule splits the plan across the basal, vegetative and reproductive windows of the
// crop. A window is skipped when the crop has no matching growth stage or no fertilizer fits it.
func BuildSchedule(plan []models.FertilizerPlanEntry, stages []models.GrowthStage) []models.ScheduleStage {
	schedule := make([]models.ScheduleStage, 0, len(applicationWindows))
	if len(plan) == 0 || len(stages) == 0 {
		return schedule
	}

	for _, window := range applicationWindows {
		if window.stageIndex >= len(stages) {
			continue
		}
		stage := stages[window.stageIndex]

		var doses []models.ScheduledFertilizer
		for _, entry := range plan {
			if entry.Quantity <= 0 || !window.allows(entry.Fertilizer) {
				continue
			}
			pct := window.percentages[entry.Fertilizer]
			if pct <= 0 {
				continue
			}
			doses = append(doses, models.ScheduledFertilizer{
				Name:     entry.Name,
				Quantity: roundTenth(entry.Quantity * pct / 100),
				Method:   window.method,
			})
		}

		if len(doses) == 0 {
			continue
		}

		schedule = append(schedule, models.ScheduleStage{
			StageName:        window.name,
			StageDescription: fmt.Sprintf("%s (%s)", stage.Name, stage.Days),
			Fertilizers:      doses,
		})
	}

	return schedule
}

func (w applicationWindow) allows(id models.FertilizerID) bool {
	for _, allowed := range w.allowed {
		if allowed == id {
			return true
		}
	}
	return false
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
