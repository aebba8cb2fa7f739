package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/glucoffee/internal/cli/formatter"
	"github.com/alexanderramin/glucoffee/internal/domain"
)

var errEmptyName = errors.New("name must not be empty")

func newInitCmd(a *App, flags *rootFlags) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.userKey(flags)
			if err != nil {
				return err
			}
			if strings.TrimSpace(name) == "" && a.interactive() {
				if err := askName(&name); err != nil {
					return err
				}
			}

			profile, err := a.Profiles.Setup(cmd.Context(), key, name, a.now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Next: `glucoffee findrisc` to check your diabetes risk.\n", formatter.Bold(profile.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your name")
	return cmd
}

func newStatusCmd(a *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show your FINDRISC result and today's sugar quota",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.userKey(flags)
			if err != nil {
				return err
			}
			ctx, now := cmd.Context(), a.now()

			profile, err := a.Profiles.Get(ctx, key)
			if err != nil {
				return err
			}
			if !profile.IsSetUp() {
				return domain.ErrProfileRequired
			}
			st, err := a.Assessments.Status(ctx, key, now)
			if err != nil {
				return err
			}
			today, err := a.Consumption.Today(ctx, key, now)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatus(*profile, *st, *today))
			return nil
		},
	}
}

func newResetCmd(a *App, flags *rootFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete your profile, FINDRISC result and coffee history",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.userKey(flags)
			if err != nil {
				return err
			}
			if !yes {
				if !a.interactive() {
					return fmt.Errorf("%w: reset deletes all your data; pass --yes to confirm", domain.ErrInvalidInput)
				}
				ok, err := confirm("Delete all your GluCoffee data?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
					return nil
				}
			}

			if err := a.Profiles.Reset(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation")
	return cmd
}
