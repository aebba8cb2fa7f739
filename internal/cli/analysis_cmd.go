package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/glucoffee/internal/app"
	"github.com/alexanderramin/glucoffee/internal/cli/formatter"
	"github.com/alexanderramin/glucoffee/internal/ledger"
)

func newHistoryCmd(a *App, flags *rootFlags) *cobra.Command {
	var period, sortBy string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show coffee history grouped by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.userKey(flags)
			if err != nil {
				return err
			}
			req, err := analysisRequest(a, period, sortBy)
			if err != nil {
				return err
			}
			req.UseGenerator = false

			resp, err := a.Analysis.Analyze(cmd.Context(), key, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(resp.Period, resp.Days, resp.Stats, resp.Aggregates.DailyLimit, *req.Now))
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "7d", "Period (7d|30d|all)")
	cmd.Flags().StringVar(&sortBy, "sort", "newest", "Order (newest|oldest|sugar)")
	return cmd
}

func newAnalyzeCmd(a *App, flags *rootFlags) *cobra.Command {
	var noAI bool
	var period string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Get personal advice from your risk and sugar intake",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.userKey(flags)
			if err != nil {
				return err
			}
			req, err := analysisRequest(a, period, string(ledger.Newest))
			if err != nil {
				return err
			}
			req.UseGenerator = !noAI

			stop := func() {}
			if req.UseGenerator && a.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Preparing your recommendation...")
			}
			resp, err := a.Analysis.Analyze(cmd.Context(), key, req)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAnalysis(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noAI, "no-ai", false, "Skip the text generator and show built-in advice")
	cmd.Flags().StringVar(&period, "period", "7d", "Period for the statistics (7d|30d|all)")
	return cmd
}

func analysisRequest(a *App, period, sortBy string) (app.AnalysisRequest, error) {
	req := app.NewAnalysisRequest()
	p, err := ledger.ParsePeriod(period)
	if err != nil {
		return req, err
	}
	s, err := ledger.ParseSortOrder(sortBy)
	if err != nil {
		return req, err
	}
	now := a.now()
	req.Now = &now
	req.Period = p
	req.Sort = s
	return req, nil
}
