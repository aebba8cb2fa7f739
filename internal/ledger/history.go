package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/glucoffee/internal/domain"
)

type Period string

const (
	Last7Days  Period = "7d"
	Last30Days Period = "30d"
	AllTime    Period = "all"
)

// ParsePeriod accepts 7d, 30d or all (also 7, 30, week, month).
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "7d", "7", "week", "":
		return Last7Days, nil
	case "30d", "30", "month":
		return Last30Days, nil
	case "all", "alltime", "all_time":
		return AllTime, nil
	}
	return "", fmt.Errorf("%w: period %q must be 7d, 30d or all", domain.ErrInvalidInput, s)
}

// Days is the window length, or 0 for AllTime.
func (p Period) Days() int {
	switch p {
	case Last7Days:
		return 7
	case Last30Days:
		return 30
	default:
		return 0
	}
}

func (p Period) Label() string {
	switch p {
	case Last7Days:
		return "Last 7 days"
	case Last30Days:
		return "Last 30 days"
	default:
		return "All time"
	}
}

func (p Period) filter(entries []Entry, now time.Time) []Entry {
	if p.Days() == 0 {
		return entries
	}
	return inWindow(entries, now, p.Days())
}

type SortOrder string

const (
	Newest       SortOrder = "newest"
	Oldest       SortOrder = "oldest"
	HighestSugar SortOrder = "sugar"
)

// ParseSortOrder accepts newest, oldest or sugar (also highest).
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "newest", "":
		return Newest, nil
	case "oldest":
		return Oldest, nil
	case "sugar", "highest", "highest_sugar":
		return HighestSugar, nil
	}
	return "", fmt.Errorf("%w: sort order %q must be newest, oldest or sugar", domain.ErrInvalidInput, s)
}

// History filters the log to the period and orders it. Ties keep insertion
// order in every sort.
func History(events []domain.ConsumptionEvent, now time.Time, period Period, order SortOrder) []Entry {
	entries, _ := Scan(events)
	return sortEntries(period.filter(entries, now), order)
}

func sortEntries(entries []Entry, order SortOrder) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	var less func(a, b Entry) bool
	switch order {
	case Oldest:
		less = func(a, b Entry) bool { return a.Timestamp.Before(b.Timestamp) }
	case HighestSugar:
		less = func(a, b Entry) bool { return a.SugarGrams > b.SugarGrams }
	default:
		less = func(a, b Entry) bool { return a.Timestamp.After(b.Timestamp) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// DayGroup is one calendar day of a history listing.
type DayGroup struct {
	Date    string
	Entries []Entry
	Total   float64
	Band    domain.SugarBand
}

// GroupByDay buckets already-ordered entries per day, keeping their order
// inside each day. Days run newest first for Newest and oldest first
// otherwise.
func GroupByDay(entries []Entry, order SortOrder, limits Limits) []DayGroup {
	idx := make(map[string]int)
	var groups []DayGroup
	for _, e := range entries {
		key := e.Day()
		i, ok := idx[key]
		if !ok {
			i = len(groups)
			idx[key] = i
			groups = append(groups, DayGroup{Date: key})
		}
		groups[i].Entries = append(groups[i].Entries, e)
		groups[i].Total += e.SugarGrams
	}
	for i := range groups {
		groups[i].Total = round(groups[i].Total)
		groups[i].Band = Classify(groups[i].Total, limits)
	}
	sort.Slice(groups, func(i, j int) bool {
		if order == Newest {
			return groups[i].Date > groups[j].Date
		}
		return groups[i].Date < groups[j].Date
	})
	return groups
}
