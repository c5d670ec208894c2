package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"printshop/internal/core/domain"
	"printshop/internal/core/ports/output"
	"printshop/internal/core/validation"
)

func newUploadCommand(app func() *App) *cobra.Command {
	var (
		form    validation.UploadForm
		private bool
	)
	def := validation.DefaultUploadForm()

	categories := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		categories[i] = string(c)
	}

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Publish a 3D model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open model file: %w", err)
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("stat model file: %w", err)
			}

			form.IsPublic = !private
			res, err := app().Uploads.Upload(cmd.Context(), form, &ports.UploadFile{
				Name:    info.Name(),
				Size:    info.Size(),
				Content: f,
			})
			if err != nil {
				return err
			}
			outf(cmd, "Model uploaded (id %s), +%d points\n", res.ModelID, res.PointsEarned)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "model name, defaults to the file name")
	cmd.Flags().StringVar(&form.Description, "description", "", "model description")
	cmd.Flags().StringVar(&form.Category, "category", def.Category, "category: "+strings.Join(categories, ", "))
	cmd.Flags().StringVar(&form.MaterialType, "material", def.MaterialType, "recommended material")
	cmd.Flags().StringVar(&form.EstimatedPrintTime, "print-time", def.EstimatedPrintTime, "estimated print time in hours")
	cmd.Flags().StringVar(&form.Price, "price", "", "price in RUB, empty for free")
	cmd.Flags().BoolVar(&private, "private", false, "hide the model from the public catalog")
	return cmd
}
