package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newModelCommand(app func() *App) *cobra.Command {
	var (
		savePath string
		like     bool
	)

	cmd := &cobra.Command{
		Use:   "model ID",
		Short: "Show model details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			details, err := a.Models.Details(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			liked := a.Models.Liked(details.ID)
			if like {
				liked = a.Models.ToggleLike(details.ID)
			}
			likes := details.Likes
			if liked {
				likes++
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "Name:\t%s\n", details.Name)
			fmt.Fprintf(tw, "Description:\t%s\n", details.Description)
			fmt.Fprintf(tw, "Category:\t%s\n", details.Category)
			fmt.Fprintf(tw, "Material:\t%s\n", details.MaterialType)
			fmt.Fprintf(tw, "Print time:\t%g h\n", details.EstimatedPrintTime)
			fmt.Fprintf(tw, "Price:\t%s\n", formatPrice(details.Price))
			fmt.Fprintf(tw, "Author:\t%s\n", details.OwnerName)
			fmt.Fprintf(tw, "Likes:\t%d\n", likes)
			fmt.Fprintf(tw, "Downloads:\t%d\n", details.Downloads)
			if details.FileFormat != "" {
				fmt.Fprintf(tw, "Format:\t%s\n", details.FileFormat)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if savePath == "" {
				return nil
			}
			data, err := details.File()
			if err != nil {
				return err
			}
			if data == nil {
				return fmt.Errorf("model %s has no downloadable file", details.ID)
			}
			if err := os.WriteFile(savePath, data, 0o644); err != nil {
				return fmt.Errorf("save model file: %w", err)
			}
			outf(cmd, "Saved %d bytes to %s\n", len(data), savePath)
			return nil
		},
	}
	cmd.Flags().StringVar(&savePath, "save", "", "write the model file to this path")
	cmd.Flags().BoolVar(&like, "like", false, "toggle your like on the model")
	return cmd
}
