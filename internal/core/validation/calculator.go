package validation

import "printshop/internal/core/domain"

// CalculatorForm holds the calculator fields exactly as typed.
type CalculatorForm struct {
	MaterialType           string
	PrintTimeHours         string
	ElectricityCostPerHour string
	ModelComplexity        string
	InfillPercentage       string
	LayerHeight            string
}

// DefaultCalculatorForm is the form as first shown to the user.
func DefaultCalculatorForm() CalculatorForm {
	return CalculatorForm{
		MaterialType:           string(domain.MaterialPLA),
		PrintTimeHours:         "2",
		ElectricityCostPerHour: "5.0",
		ModelComplexity:        string(domain.ComplexityMedium),
		InfillPercentage:       "20",
		LayerHeight:            "0.2",
	}
}

// ValidateCalculatorInput checks print time, electricity cost, infill and
// layer height in that order, then the two pickers.
func ValidateCalculatorInput(form CalculatorForm) (domain.CalculationRequest, error) {
	hours, ok := parseDecimal(form.PrintTimeHours)
	if !ok || hours <= 0 || hours > 100 {
		return domain.CalculationRequest{}, fail("print_time_hours", MsgPrintTime)
	}

	electricity, ok := parseDecimal(form.ElectricityCostPerHour)
	if !ok || electricity < 0 || electricity > 50 {
		return domain.CalculationRequest{}, fail("electricity_cost_per_hour", MsgElectricity)
	}

	infill, ok := parseInteger(form.InfillPercentage)
	if !ok || infill < 5 || infill > 100 {
		return domain.CalculationRequest{}, fail("infill_percentage", MsgInfill)
	}

	layer, ok := parseDecimal(form.LayerHeight)
	if !ok || layer < 0.1 || layer > 0.5 {
		return domain.CalculationRequest{}, fail("layer_height", MsgLayerHeight)
	}

	material := domain.Material(form.MaterialType)
	if !material.Valid() {
		return domain.CalculationRequest{}, fail("material_type", MsgMaterial)
	}

	complexity := domain.Complexity(form.ModelComplexity)
	if !complexity.Valid() {
		return domain.CalculationRequest{}, fail("model_complexity", MsgComplexity)
	}

	return domain.CalculationRequest{
		MaterialType:           material,
		PrintTimeHours:         hours,
		ElectricityCostPerHour: electricity,
		ModelComplexity:        complexity,
		InfillPercentage:       infill,
		LayerHeight:            layer,
	}, nil
}
