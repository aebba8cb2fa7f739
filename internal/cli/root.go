package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/glucoffee/internal/app"
	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/sugar"
)

// App holds the use cases and environment hooks used by CLI commands.
type App struct {
	Profiles    app.ProfileUseCase
	Assessments app.AssessmentUseCase
	Consumption app.ConsumptionUseCase
	Analysis    app.AnalysisUseCase
	SugarPolicy sugar.Policy

	// Init wires the use cases from the config file before any command
	// runs. Tests leave it nil and fill the fields directly.
	Init  func(configPath string) error
	Close func() error

	// ResolveUser maps the --user flag to a record key.
	ResolveUser   func(flag string) (string, error)
	Now           func() time.Time
	IsInteractive func() bool
}

type rootFlags struct {
	user   string
	config string
}

// NewRootCmd creates the top-level "glucoffee" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "glucoffee",
		Short:         "Track coffee sugar against your diabetes risk",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.Init != nil {
				return a.Init(flags.config)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.Close != nil {
				return a.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&flags.user, "user", "", "Record key (default: $GLUCOFFEE_USER or a generated id)")
	root.PersistentFlags().StringVar(&flags.config, "config", "", "Config file (default: $GLUCOFFEE_CONFIG or ~/.glucoffee/config.yaml)")

	root.AddCommand(
		newInitCmd(a, flags),
		newStatusCmd(a, flags),
		newFindriscCmd(a, flags),
		newCoffeeCmd(a, flags),
		newHistoryCmd(a, flags),
		newAnalyzeCmd(a, flags),
		newResetCmd(a, flags),
	)

	return root
}

func (a *App) userKey(flags *rootFlags) (string, error) {
	if a.ResolveUser == nil {
		if flags.user == "" {
			return "", fmt.Errorf("%w: --user is required", domain.ErrInvalidInput)
		}
		return flags.user, nil
	}
	return a.ResolveUser(flags.user)
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// ErrorMessage turns a command error into the line shown to the user.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrProfileRequired):
		return "No profile yet. Run `glucoffee init --name <your name>` first."
	case errors.Is(err, domain.ErrStorageUnavailable):
		return fmt.Sprintf("Your data could not be read or saved: %v", err)
	case errors.Is(err, domain.ErrInvalidInput):
		return fmt.Sprintf("Invalid input: %v", err)
	default:
		return err.Error()
	}
}
