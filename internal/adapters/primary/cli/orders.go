package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"printshop/internal/core/domain"
	"printshop/internal/core/validation"
)

func newOrdersCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List your print orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := app().Orders.MyOrders(cmd.Context())
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				outln(cmd, "No orders yet")
				return nil
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tMODEL\tTOTAL\tSTATUS\tPAYMENT\tCREATED\tREADY BY")
			for _, o := range orders {
				ready := "-"
				if o.EstimatedCompletion != nil && !o.EstimatedCompletion.IsZero() {
					ready = o.EstimatedCompletion.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					o.ID, o.ModelName, formatRub(o.TotalPrice), o.Status, o.PaymentStatus,
					o.CreatedAt.Format("2006-01-02 15:04"), ready)
			}
			return tw.Flush()
		},
	}
}

func newOrderCommand(app func() *App) *cobra.Command {
	var form validation.OrderForm

	cmd := &cobra.Command{
		Use:   "order MODEL_ID",
		Short: "Order a print of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form.ModelID = args[0]
			res, err := app().Orders.PlaceOrder(cmd.Context(), form)
			if err != nil {
				return err
			}
			outf(cmd, "Order %s created (%s), +%d points\n", res.OrderID, res.Status, res.PointsEarned)
			return nil
		},
	}
	addCalculatorFlags(cmd.Flags(), &form.Calculation)
	cmd.Flags().StringVar(&form.TotalPrice, "total", "", "agreed total price in RUB")
	cmd.Flags().StringVar(&form.DeliveryAddress, "address", "", "delivery address")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "contact phone")
	return cmd
}

func newHealthCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app().API.IsAvailable(cmd.Context()) {
				return fmt.Errorf("health check: %w", domain.ErrNetwork)
			}
			outln(cmd, "Backend is up")
			return nil
		},
	}
}
