package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"printshop/internal/core/domain"
	"printshop/internal/core/validation"
)

// addCalculatorFlags binds the calculator form to flags. Values stay raw
// strings so the validator sees exactly what was typed.
func addCalculatorFlags(fs *pflag.FlagSet, form *validation.CalculatorForm) {
	def := validation.DefaultCalculatorForm()
	*form = def

	materials := make([]string, len(domain.Materials))
	for i, m := range domain.Materials {
		materials[i] = string(m)
	}

	fs.StringVar(&form.MaterialType, "material", def.MaterialType, "material: "+strings.Join(materials, ", "))
	fs.StringVar(&form.PrintTimeHours, "hours", def.PrintTimeHours, "print time in hours (0.1-100)")
	fs.StringVar(&form.ElectricityCostPerHour, "electricity", def.ElectricityCostPerHour, "electricity cost, RUB per hour (0-50)")
	fs.StringVar(&form.ModelComplexity, "complexity", def.ModelComplexity, "complexity: simple, medium, complex")
	fs.StringVar(&form.InfillPercentage, "infill", def.InfillPercentage, "infill percentage (5-100)")
	fs.StringVar(&form.LayerHeight, "layer-height", def.LayerHeight, "layer height in mm (0.1-0.5)")
}

func newEstimateCommand(app func() *App) *cobra.Command {
	var form validation.CalculatorForm

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the cost of a print",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			est, err := app().Calculator.Estimate(cmd.Context(), form)
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "Electricity:\t%s\n", formatRub(est.Breakdown.ElectricityCost))
			fmt.Fprintf(tw, "Material:\t%s\n", formatRub(est.Breakdown.MaterialCost))
			fmt.Fprintf(tw, "Service fee:\t%s\n", formatRub(est.Breakdown.ServiceFee))
			fmt.Fprintf(tw, "Material volume:\t%.2f cm3\n", est.Breakdown.MaterialVolumeCM3)
			fmt.Fprintf(tw, "Complexity:\tx%.1f\n", est.Breakdown.ComplexityMultiplier)
			fmt.Fprintf(tw, "Total:\t%s\n", formatRub(est.TotalCostRub))
			fmt.Fprintf(tw, "Ready in:\t%.1f h (%.1f days)\n", est.EstimatedCompletion.Hours, est.EstimatedCompletion.Days)
			return tw.Flush()
		},
	}
	addCalculatorFlags(cmd.Flags(), &form)
	return cmd
}
