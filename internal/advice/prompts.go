package advice

import (
	"fmt"
	"strings"
)

// systemPrompt frames the generator as a nutrition educator.
const systemPrompt = `You are GluCoffee Assistant, a nutrition and diabetes educator.
You receive a short health profile of one person: their FINDRISC diabetes risk
result and/or today's added sugar from coffee measured against the WHO daily limit.
Write warm, practical advice in plain language. You are not a doctor; never
diagnose, and suggest seeing a doctor when the risk is high or very high.`

// BuildPrompt renders the user prompt. Absent sections are left out.
func BuildPrompt(s Summary) string {
	var b strings.Builder

	name := s.Name
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "USER PROFILE: %s\n\nHEALTH DATA:\n", name)

	if r := s.Risk; r != nil {
		fmt.Fprintf(&b, "- FINDRISC score: %d points\n", r.Score)
		fmt.Fprintf(&b, "- Risk level: %s (%s)\n", r.Level.Label(), r.Incidence)
		fmt.Fprintf(&b, "- Age: %s\n", r.Age)
		fmt.Fprintf(&b, "- BMI: %s\n", r.BMI)
	}
	if c := s.Consumption; c != nil {
		fmt.Fprintf(&b, "- Sugar from coffee today: %.1f g (limit %.0f g)\n", c.TodayTotal, c.DailyLimit)
		fmt.Fprintf(&b, "- %d-day average: %.1f g/day\n", c.WindowDays, c.WeeklyAverage)
		fmt.Fprintf(&b, "- Remaining quota today: %.1f g\n", c.RemainingQuota)
	}

	b.WriteString(`
TASKS:
1. Greet the user warmly by name
2. Relate the FINDRISC result to their sugar consumption pattern
3. Suggest a meal plan for the rest of today based on the remaining quota
4. Give tips for choosing healthier coffee
5. Lay out a 3-day action plan
6. Close with a short motivation

Use English, at most 500 words.
`)
	return b.String()
}
