package domain

type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

func (c Complexity) Valid() bool {
	switch c {
	case ComplexitySimple, ComplexityMedium, ComplexityComplex:
		return true
	}
	return false
}

// CalculationRequest is only built from input that passed validation.
type CalculationRequest struct {
	MaterialType           Material   `json:"material_type"`
	PrintTimeHours         float64    `json:"print_time_hours"`
	ElectricityCostPerHour float64    `json:"electricity_cost_per_hour"`
	ModelComplexity        Complexity `json:"model_complexity"`
	InfillPercentage       int        `json:"infill_percentage"`
	LayerHeight            float64    `json:"layer_height"`
}

type CostBreakdown struct {
	ElectricityCost      float64 `json:"electricity_cost"`
	MaterialCost         float64 `json:"material_cost"`
	ServiceFee           float64 `json:"service_fee"`
	MaterialVolumeCM3    float64 `json:"material_volume_cm3"`
	ComplexityMultiplier float64 `json:"complexity_multiplier"`
}

type Completion struct {
	Hours float64 `json:"hours"`
	Days  float64 `json:"days"`
}

// Estimate is computed by the backend; the client only renders it.
type Estimate struct {
	TotalCostRub        float64       `json:"total_cost_rub"`
	Breakdown           CostBreakdown `json:"breakdown"`
	EstimatedCompletion Completion    `json:"estimated_completion"`
}
