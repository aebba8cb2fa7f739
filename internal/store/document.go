package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/glucoffee/internal/domain"
)

// The persisted field names are a compatibility contract with existing data
// files. Do not rename them.
type document struct {
	UserProfile   profileDoc  `json:"user_profile"`
	Findrisc      findriscDoc `json:"findrisc"`
	CoffeeHistory []coffeeDoc `json:"coffee_history"`
}

// storedDocument defers history entries so one damaged entry cannot fail
// the whole record.
type storedDocument struct {
	UserProfile   profileDoc        `json:"user_profile"`
	Findrisc      findriscDoc       `json:"findrisc"`
	CoffeeHistory []json.RawMessage `json:"coffee_history"`
}

type profileDoc struct {
	Name      *string `json:"name"`
	CreatedAt *string `json:"created_at"`
}

type findriscDoc struct {
	Score       *int              `json:"score"`
	RiskLevel   *string           `json:"risk_level"`
	LastUpdated *string           `json:"last_updated"`
	RawAnswers  map[string]string `json:"raw_answers"`
}

type coffeeDoc struct {
	Date     string   `json:"date"`
	Drink    string   `json:"drink"`
	Volume   string   `json:"volume"`
	Quantity int      `json:"quantity"`
	Topping  []string `json:"topping"`
	Sugar    *float64 `json:"sugar"`
}

// legacy timestamps carry no zone and are read as local time.
var legacyLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Encode renders rec as the persisted JSON document.
func Encode(rec *domain.Record) ([]byte, error) {
	doc := document{
		Findrisc:      findriscDoc{RawAnswers: map[string]string{}},
		CoffeeHistory: make([]coffeeDoc, 0, len(rec.Events)),
	}
	if rec.Profile.Name != "" {
		name := rec.Profile.Name
		doc.UserProfile.Name = &name
	}
	doc.UserProfile.CreatedAt = formatTime(rec.Profile.CreatedAt)

	a := rec.Assessment
	if a.Score != nil {
		score := *a.Score
		doc.Findrisc.Score = &score
	}
	if a.RiskLevel != "" {
		level := string(a.RiskLevel)
		doc.Findrisc.RiskLevel = &level
	}
	doc.Findrisc.LastUpdated = formatTime(a.LastUpdated)
	for k, v := range a.RawAnswers {
		doc.Findrisc.RawAnswers[k] = v
	}

	for _, ev := range rec.Events {
		c := coffeeDoc{
			Drink:    ev.BeverageID,
			Volume:   string(ev.ServingSize),
			Quantity: ev.Quantity,
			Topping:  append([]string{}, ev.Additives...),
		}
		sugarGrams := ev.SugarGrams
		c.Sugar = &sugarGrams
		if !ev.Timestamp.IsZero() {
			c.Date = ev.Timestamp.Format(time.RFC3339Nano)
		}
		doc.CoffeeHistory = append(doc.CoffeeHistory, c)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses a persisted document. Missing sections decode to their
// defaults. A history entry that does not parse, has an unreadable date or
// has no sugar value keeps a zero timestamp so that aggregates skip and
// count it instead of failing the whole record.
func Decode(data []byte) (*domain.Record, error) {
	var doc storedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	rec := domain.NewRecord()
	if doc.UserProfile.Name != nil {
		rec.Profile.Name = *doc.UserProfile.Name
	}
	rec.Profile.CreatedAt = parseTime(doc.UserProfile.CreatedAt)

	f := doc.Findrisc
	if f.Score != nil {
		score := *f.Score
		rec.Assessment.Score = &score
	}
	if f.RiskLevel != nil {
		rec.Assessment.RiskLevel = parseRiskLevel(*f.RiskLevel)
	}
	rec.Assessment.LastUpdated = parseTime(f.LastUpdated)
	for k, v := range f.RawAnswers {
		rec.Assessment.RawAnswers[k] = v
	}

	for _, raw := range doc.CoffeeHistory {
		rec.Events = append(rec.Events, decodeEvent(raw))
	}
	return rec, nil
}

func decodeEvent(raw json.RawMessage) domain.ConsumptionEvent {
	var c coffeeDoc
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.ConsumptionEvent{ServingSize: domain.SizeRegular, Additives: []string{}}
	}
	ev := domain.ConsumptionEvent{
		BeverageID:  c.Drink,
		ServingSize: parseVolume(c.Volume),
		Quantity:    c.Quantity,
		Additives:   append([]string{}, c.Topping...),
	}
	if c.Sugar == nil {
		return ev
	}
	ev.SugarGrams = *c.Sugar
	if ts := parseTime(&c.Date); ts != nil {
		ev.Timestamp = *ts
	}
	return ev
}

func formatTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339Nano)
	return &s
}

func parseTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, *s); err == nil {
		return &t
	}
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, *s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

// parseVolume accepts the canonical size names and older display labels such
// as "Reguler (≈350ml)" or "Large (≈473ml)".
func parseVolume(v string) domain.ServingSize {
	lv := strings.ToLower(v)
	if strings.Contains(lv, "large") {
		return domain.SizeLarge
	}
	return domain.SizeRegular
}

// parseRiskLevel accepts canonical levels and older display labels.
func parseRiskLevel(s string) domain.RiskLevel {
	if domain.ValidRiskLevels[domain.RiskLevel(s)] {
		return domain.RiskLevel(s)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rendah", "low":
		return domain.RiskLow
	case "sedikit meningkat", "slightly elevated":
		return domain.RiskSlightlyElevated
	case "sedang", "moderate":
		return domain.RiskModerate
	case "tinggi", "high":
		return domain.RiskHigh
	case "sangat tinggi", "very high":
		return domain.RiskVeryHigh
	}
	return domain.RiskLevel(s)
}
