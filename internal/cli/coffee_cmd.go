package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/glucoffee/internal/cli/formatter"
	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/sugar"
)

type orderInput struct {
	drink     string
	size      string
	qty       int
	qtyText   string
	additives []string
}

func validateQuantity(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a whole number of cups")
	}
	return nil
}

func (o orderInput) order() (sugar.Order, error) {
	size, err := domain.ParseServingSize(o.size)
	if err != nil {
		return sugar.Order{}, err
	}
	return sugar.Order{
		BeverageID: o.drink,
		Size:       size,
		Quantity:   o.qty,
		Additives:  o.additives,
	}, nil
}

func newCoffeeCmd(a *App, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coffee",
		Short: "Log coffee and check today's sugar",
	}
	cmd.AddCommand(
		newCoffeeMenuCmd(a),
		newCoffeeLogCmd(a, flags),
		newCoffeeTodayCmd(a, flags),
	)
	return cmd
}

func newCoffeeMenuCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List beverages and additives with their sugar",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMenu(a.SugarPolicy))
			return nil
		},
	}
}

func newCoffeeLogCmd(a *App, flags *rootFlags) *cobra.Command {
	in := orderInput{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a coffee order",
		Example: `  glucoffee coffee log --drink "Caffe Latte" --size large --qty 2
  glucoffee coffee log --drink americano --add oat_milk --add extra_shot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.userKey(flags)
			if err != nil {
				return err
			}

			if in.drink == "" {
				if !a.interactive() {
					return fmt.Errorf("%w: --drink is required", domain.ErrInvalidInput)
				}
				in.qtyText = strconv.Itoa(in.qty)
				if err := askOrder(&in); err != nil {
					return err
				}
				in.qty, _ = strconv.Atoi(strings.TrimSpace(in.qtyText))
			}

			order, err := in.order()
			if err != nil {
				return err
			}
			res, err := a.Consumption.Log(cmd.Context(), key, order, a.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLogResult(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.drink, "drink", "", "Beverage name, see `glucoffee coffee menu`")
	cmd.Flags().StringVar(&in.size, "size", "regular", "Serving size (regular|large)")
	cmd.Flags().IntVar(&in.qty, "qty", 1, "Number of cups")
	cmd.Flags().StringSliceVar(&in.additives, "add", nil, "Additive key, repeatable")

	return cmd
}

func newCoffeeTodayCmd(a *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's coffee and remaining quota",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.userKey(flags)
			if err != nil {
				return err
			}
			today, err := a.Consumption.Today(cmd.Context(), key, a.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatToday(today))
			return nil
		},
	}
}
