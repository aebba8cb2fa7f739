package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/glucoffee/internal/cli/formatter"
	"github.com/alexanderramin/glucoffee/internal/findrisc"
	"github.com/alexanderramin/glucoffee/internal/sugar"
)

func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// runForm draws on stderr so command output on stdout stays pipeable.
func runForm(groups ...*huh.Group) error {
	return huh.NewForm(groups...).
		WithTheme(huhTheme()).
		WithShowHelp(false).
		WithProgramOptions(tea.WithOutput(os.Stderr)).
		Run()
}

func confirm(title string) (bool, error) {
	var ok bool
	err := runForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&ok),
	))
	return ok, err
}

func askName(name *string) error {
	return runForm(huh.NewGroup(
		huh.NewInput().
			Title("What's your name?").
			Value(name).
			Validate(func(s string) error {
				if len(s) == 0 {
					return errEmptyName
				}
				return nil
			}),
	))
}

// askFindrisc fills answers for every question not already answered.
func askFindrisc(answers findrisc.Answers) error {
	values := make(map[string]*string, len(findrisc.Questions))
	var fields []huh.Field
	for _, q := range findrisc.Questions {
		if _, ok := answers[q.Key]; ok {
			continue
		}
		v := new(string)
		values[q.Key] = v
		opts := make([]huh.Option[string], 0, len(q.Options))
		for _, o := range q.Options {
			opts = append(opts, huh.NewOption(o.Label, o.Key))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title(q.Prompt).
			Description(q.Hint).
			Options(opts...).
			Value(v))
	}
	if len(fields) == 0 {
		return nil
	}
	if err := runForm(huh.NewGroup(fields...)); err != nil {
		return err
	}
	for key, v := range values {
		answers[key] = *v
	}
	return nil
}

// askOrder fills the beverage, size, quantity and additives of an order.
func askOrder(o *orderInput) error {
	bevs := make([]huh.Option[string], 0, len(sugar.Menu))
	for _, b := range sugar.Menu {
		bevs = append(bevs, huh.NewOption(b.ID, b.ID))
	}
	adds := make([]huh.Option[string], 0, len(sugar.Additives))
	for _, a := range sugar.Additives {
		adds = append(adds, huh.NewOption(a.Label, a.Key))
	}

	return runForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Beverage").Options(bevs...).Value(&o.drink),
		huh.NewSelect[string]().Title("Size").Options(
			huh.NewOption(formatter.SizeLabel("regular"), "regular"),
			huh.NewOption(formatter.SizeLabel("large"), "large"),
		).Value(&o.size),
		huh.NewInput().Title("Cups").Value(&o.qtyText).Validate(validateQuantity),
		huh.NewMultiSelect[string]().Title("Additives").Options(adds...).Value(&o.additives),
	))
}
