package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"printshop/internal/config"
)

// NewRootCommand builds the printshop command tree. Flags given on the command
// line override cfg.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	var app *App

	root := &cobra.Command{
		Use:           "printshop",
		Short:         "3D print marketplace client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			app = a
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
	}

	root.PersistentFlags().StringVar(&cfg.Backend.URL, "backend-url", cfg.Backend.URL, "marketplace backend base URL")
	root.PersistentFlags().StringVar(&cfg.Session.DBPath, "session", cfg.Session.DBPath, "session database file")

	getApp := func() *App { return app }

	root.AddCommand(
		newLoginCommand(getApp),
		newRegisterCommand(getApp),
		newLogoutCommand(getApp),
		newProfileCommand(getApp),
		newEstimateCommand(getApp),
		newCatalogCommand(getApp),
		newModelCommand(getApp),
		newUploadCommand(getApp),
		newOrdersCommand(getApp),
		newOrderCommand(getApp),
		newHealthCommand(getApp),
	)
	return root
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func formatRub(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + " RUB"
}

func formatPrice(p *float64) string {
	if p == nil {
		return "free"
	}
	return formatRub(*p)
}

func outln(cmd *cobra.Command, a ...interface{}) {
	fmt.Fprintln(cmd.OutOrStdout(), a...)
}

func outf(cmd *cobra.Command, format string, a ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}
