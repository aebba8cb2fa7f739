package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/glucoffee/internal/cli/formatter"
	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/findrisc"
)

func flagName(questionKey string) string {
	return strings.ReplaceAll(questionKey, "_", "-")
}

// addQuestionFlags registers one string flag per question, with the option
// keys in its usage text.
func addQuestionFlags(fs *pflag.FlagSet, values map[string]*string) {
	for _, q := range findrisc.Questions {
		keys := make([]string, 0, len(q.Options))
		for _, o := range q.Options {
			keys = append(keys, o.Key)
		}
		values[q.Key] = fs.String(flagName(q.Key), "", fmt.Sprintf("%s (%s)", q.Prompt, strings.Join(keys, "|")))
	}
}

func newFindriscCmd(a *App, flags *rootFlags) *cobra.Command {
	var force, show bool
	values := make(map[string]*string, len(findrisc.Questions))

	cmd := &cobra.Command{
		Use:   "findrisc",
		Short: "Take the FINDRISC diabetes risk test",
		Long: "Answer the eight FINDRISC questions with flags, or interactively when no\n" +
			"flags are given in a terminal. Option keys are listed in each flag's help.",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.userKey(flags)
			if err != nil {
				return err
			}
			ctx, now := cmd.Context(), a.now()
			out := cmd.OutOrStdout()

			st, err := a.Assessments.Status(ctx, key, now)
			if err != nil {
				return err
			}
			if show {
				fmt.Fprintln(out, formatter.FormatAssessment(*st))
				return nil
			}

			if st.State == domain.AssessmentValid && !force {
				msg := fmt.Sprintf("You took the test %d days ago; it stays valid for %d more days.", st.DaysSince, st.DaysUntilStale())
				if !a.interactive() {
					return fmt.Errorf("%w: %s Pass --force to replace it", domain.ErrInvalidInput, msg)
				}
				ok, err := confirm(msg + " Retake it now?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, formatter.FormatAssessment(*st))
					return nil
				}
			}

			answers := findrisc.Answers{}
			var missing []string
			for _, q := range findrisc.Questions {
				if v := *values[q.Key]; v != "" {
					answers[q.Key] = v
				} else {
					missing = append(missing, "--"+flagName(q.Key))
				}
			}
			if len(missing) > 0 {
				if !a.interactive() {
					return fmt.Errorf("%w: missing answers: %s", domain.ErrInvalidAnswer, strings.Join(missing, ", "))
				}
				if err := askFindrisc(answers); err != nil {
					return err
				}
			}

			st, err = a.Assessments.Submit(ctx, key, answers, now)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatAssessment(*st))
			return nil
		},
	}

	addQuestionFlags(cmd.Flags(), values)
	cmd.Flags().BoolVar(&force, "force", false, "Replace a result that is still valid")
	cmd.Flags().BoolVar(&show, "show", false, "Show the stored result without retaking")

	return cmd
}
