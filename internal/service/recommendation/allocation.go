package recommendation

import (
	"math"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
)

// satisfiedEpsilon absorbs floating point residue so a nutrient covered exactly by an earlier
// fertilizer is not topped up with a vanishing dose of another one.
const satisfiedEpsilon = 1e-9

// Allocate covers the deficiency with a fixed greedy order: NPK complex while both P and K are
// short, then DAP for P, MOP for K and Urea for N. It never re-solves for a cheaper mix.
func (e *Engine) Allocate(deficiency models.NPK) []models.FertilizerPlanEntry {
	plan := make([]models.FertilizerPlanEntry, 0, 4)
	remaining := deficiency

	if remaining.P > satisfiedEpsilon && remaining.K > satisfiedEpsilon {
		spec := e.fertilizer(models.FertilizerNPKComplex)
		share := spec.Fraction()
		qty := math.Min(remaining.P/share.P, remaining.K/share.K)
		plan, remaining = addEntry(plan, remaining, spec, qty)
	}

	if remaining.P > satisfiedEpsilon {
		spec := e.fertilizer(models.FertilizerDAP)
		plan, remaining = addEntry(plan, remaining, spec, remaining.P/spec.Fraction().P)
	}

	if remaining.K > satisfiedEpsilon {
		spec := e.fertilizer(models.FertilizerMOP)
		plan, remaining = addEntry(plan, remaining, spec, remaining.K/spec.Fraction().K)
	}

	if remaining.N > satisfiedEpsilon {
		spec := e.fertilizer(models.FertilizerUrea)
		plan, _ = addEntry(plan, remaining, spec, remaining.N/spec.Fraction().N)
	}

	return plan
}

func addEntry(plan []models.FertilizerPlanEntry, remaining models.NPK, spec models.FertilizerSpec, qty float64) ([]models.FertilizerPlanEntry, models.NPK) {
	if qty <= 0 {
		return plan, remaining
	}

	share := spec.Fraction()
	provided := models.NPK{N: qty * share.N, P: qty * share.P, K: qty * share.K}

	plan = append(plan, models.FertilizerPlanEntry{
		Fertilizer:       spec.ID,
		Name:             spec.Name,
		Quantity:         qty,
		Composition:      spec.Composition,
		Description:      spec.Description,
		NutrientProvided: provided,
	})

	remaining.N -= provided.N
	remaining.P -= provided.P
	remaining.K -= provided.K

	return plan, remaining
}
