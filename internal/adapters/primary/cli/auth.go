package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"printshop/internal/core/domain"
	"printshop/internal/core/validation"
)

func newLoginCommand(app func() *App) *cobra.Command {
	var form validation.AuthForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := app().Auth.Login(cmd.Context(), form)
			if err != nil {
				return err
			}
			outf(cmd, "Signed in as %s (%d points)\n", res.User.Name, res.User.Points)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password")
	return cmd
}

func newRegisterCommand(app func() *App) *cobra.Command {
	var form validation.AuthForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := app().Auth.Register(cmd.Context(), form)
			if err != nil {
				return err
			}
			outf(cmd, "Welcome, %s! You received %d points.\n", res.User.Name, res.User.Points)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "display name")
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "password, at least 6 characters")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm", "", "password confirmation")
	return cmd
}

func newLogoutCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app().Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			outln(cmd, "Signed out")
			return nil
		},
	}
}

func newProfileCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app().Auth.Profile(cmd.Context())
			if err != nil {
				return err
			}
			printUser(cmd, user)
			return nil
		},
	}
}

func printUser(cmd *cobra.Command, u *domain.User) {
	tw := newTable(cmd.OutOrStdout())
	defer tw.Flush()
	fmt.Fprintf(tw, "Name:\t%s\n", u.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Points:\t%d\n", u.Points)
	fmt.Fprintf(tw, "Orders:\t%d\n", u.OrdersCount)
	fmt.Fprintf(tw, "Models:\t%d\n", u.ModelsCount)
	if u.CreatedAt != nil && !u.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Member since:\t%s\n", u.CreatedAt.Format("2006-01-02"))
	}
}
