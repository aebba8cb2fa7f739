package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/glucoffee/internal/app"
	"github.com/alexanderramin/glucoffee/internal/ledger"
	"github.com/alexanderramin/glucoffee/internal/sugar"
)

// FormatMenu lists beverages with regular and large sugar, then additives.
func FormatMenu(policy sugar.Policy) string {
	rows := make([][]string, 0, len(sugar.Menu))
	for i, bev := range sugar.Menu {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%2d", i+1)),
			bev.ID,
			Grams(bev.BaseGrams),
			Grams(bev.BaseGrams * policy.LargeMultiplier),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"#", "BEVERAGE", "REGULAR", "LARGE"}, rows))
	b.WriteString("\n")
	b.WriteString(Header("Additives"))
	b.WriteString("\n")
	for _, a := range sugar.Additives {
		fmt.Fprintf(&b, "  %-20s %s\n", a.Key, Dim(a.Label))
	}
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("Each additive adds %.0f g once per order.", policy.AdditiveGrams)))
	return RenderBox("Menu", b.String())
}

// FormatLogResult confirms a logged order.
func FormatLogResult(res *app.LogResult) string {
	ev := res.Event
	var b strings.Builder
	fmt.Fprintf(&b, "%s x%d %s\n", Bold(ev.BeverageID), ev.Quantity, Dim(SizeLabel(ev.ServingSize)))
	if len(ev.Additives) > 0 {
		fmt.Fprintf(&b, "Additives: %s\n", AdditiveLabels(ev.Additives))
	}
	fmt.Fprintf(&b, "Added sugar: %s\n\n", Bold(Grams(ev.SugarGrams)))
	b.WriteString(formatQuota(res.Today))
	return RenderBox("Logged", b.String())
}

// FormatToday lists today's entries and the quota.
func FormatToday(t *app.TodayView) string {
	var b strings.Builder
	if len(t.Entries) == 0 {
		b.WriteString(Dim("Nothing logged today.") + "\n\n")
	} else {
		rows := make([][]string, 0, len(t.Entries))
		for _, e := range t.Entries {
			rows = append(rows, entryRow(e))
		}
		b.WriteString(RenderTable(entryHeaders, rows))
		b.WriteString("\n")
	}
	b.WriteString(formatQuota(*t))
	return RenderBox("Today", b.String())
}

var entryHeaders = []string{"TIME", "BEVERAGE", "SIZE", "QTY", "ADDITIVES", "SUGAR"}

func entryRow(e ledger.Entry) []string {
	return []string{
		e.Timestamp.Format("15:04"),
		e.BeverageID,
		SizeLabel(e.ServingSize),
		fmt.Sprintf("%d", e.Quantity),
		AdditiveLabels(e.Additives),
		Grams(e.SugarGrams),
	}
}
