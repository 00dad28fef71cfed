package recommendation

import (
	"go.uber.org/zap"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
)

// CalculateCost prices the plan. It returns nil for an empty plan.
// Fertilizers missing from the price table cost nothing rather than failing the request.
func (e *Engine) CalculateCost(plan []models.FertilizerPlanEntry) *models.CostBreakdown {
	if len(plan) == 0 {
		return nil
	}

	breakdown := &models.CostBreakdown{Details: make([]models.CostLine, 0, len(plan))}
	for _, entry := range plan {
		unitCost := e.unitCost(entry.Fertilizer)
		line := models.CostLine{
			Name:      entry.Name,
			Quantity:  entry.Quantity,
			UnitCost:  unitCost,
			TotalCost: entry.Quantity * unitCost,
		}
		breakdown.TotalCost += line.TotalCost
		breakdown.Details = append(breakdown.Details, line)
	}
	breakdown.CostPerHectare = breakdown.TotalCost

	return breakdown
}

func (e *Engine) unitCost(id models.FertilizerID) float64 {
	spec, ok := e.catalog.Fertilizer(id)
	if !ok {
		e.logger.Debug("no unit cost for fertilizer, pricing at zero", zap.String("fertilizer", string(id)))
		return 0
	}
	return spec.UnitCost
}
