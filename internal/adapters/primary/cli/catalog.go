package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"printshop/internal/core/services"
)

func newCatalogCommand(app func() *App) *cobra.Command {
	var (
		search   string
		category string
		pages    int
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse public models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pager := app().Catalog

			if err := pager.SetCategory(ctx, category); err != nil {
				return err
			}
			if err := pager.SetSearch(ctx, search); err != nil {
				return err
			}
			// Filters left at their defaults trigger no fetch of their own.
			if pager.Snapshot().Page == 1 {
				if err := pager.Load(ctx); err != nil {
					return err
				}
			}
			for i := 1; i < pages && pager.Snapshot().HasMore; i++ {
				if err := pager.LoadMore(ctx); err != nil {
					return err
				}
			}

			printCatalog(cmd, pager.Snapshot())
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "search text")
	cmd.Flags().StringVar(&category, "category", "", "category filter, empty for all")
	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to load")
	return cmd
}

func printCatalog(cmd *cobra.Command, state services.CatalogState) {
	if len(state.Models) == 0 {
		outln(cmd, "No models found")
		return
	}

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tMATERIAL\tPRICE\tLIKES")
	for _, m := range state.Models {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			m.ID, m.Name, m.Category, m.MaterialType, formatPrice(m.Price), m.Likes)
	}
	tw.Flush()

	if state.HasMore {
		outf(cmd, "%d models shown, more available (use --pages %d)\n", len(state.Models), state.Page)
	} else {
		outf(cmd, "%d models\n", len(state.Models))
	}
}
