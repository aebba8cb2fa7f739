package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/glucoffee/internal/domain"
)

func fullRecord() *domain.Record {
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 6, 2, 10, 30, 0, 123456789, time.UTC)
	score := 25
	rec := domain.NewRecord()
	rec.Profile = domain.UserProfile{Name: "Sari", CreatedAt: &created}
	rec.Assessment = domain.RiskAssessment{
		Score:       &score,
		RiskLevel:   domain.RiskVeryHigh,
		LastUpdated: &updated,
		RawAnswers:  map[string]string{"age": "55-64 years", "bmi": "Higher than 30 kg/m²"},
	}
	rec.Events = []domain.ConsumptionEvent{
		{Timestamp: created.Add(time.Hour), BeverageID: "Caffe Latte", ServingSize: domain.SizeRegular, Quantity: 1, Additives: []string{}, SugarGrams: 31.5},
		{Timestamp: created.Add(2 * time.Hour), BeverageID: "Cappuccino", ServingSize: domain.SizeLarge, Quantity: 2, Additives: []string{"whipped_cream", "oat_milk"}, SugarGrams: 46.72},
	}
	return rec
}

func TestRoundTrip(t *testing.T) {
	cases := map[string]*domain.Record{
		"empty":        domain.NewRecord(),
		"full":         fullRecord(),
		"no history":   func() *domain.Record { r := fullRecord(); r.Events = []domain.ConsumptionEvent{}; return r }(),
		"profile only": func() *domain.Record { r := domain.NewRecord(); r.Profile.Name = "Budi"; return r }(),
	}
	for name, rec := range cases {
		t.Run(name, func(t *testing.T) {
			data, err := Encode(rec)
			require.NoError(t, err)
			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, rec, got)
		})
	}
}

func TestEncode_FieldNames(t *testing.T) {
	data, err := Encode(fullRecord())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.ElementsMatch(t, []string{"user_profile", "findrisc", "coffee_history"}, keys(raw))
	assert.ElementsMatch(t, []string{"name", "created_at"}, keys(raw["user_profile"].(map[string]any)))
	assert.ElementsMatch(t, []string{"score", "risk_level", "last_updated", "raw_answers"}, keys(raw["findrisc"].(map[string]any)))

	history := raw["coffee_history"].([]any)
	require.Len(t, history, 2)
	assert.ElementsMatch(t, []string{"date", "drink", "volume", "quantity", "topping", "sugar"}, keys(history[0].(map[string]any)))
}

func TestEncode_EmptyRecordUsesNulls(t *testing.T) {
	data, err := Encode(domain.NewRecord())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"user_profile": {"name": null, "created_at": null},
		"findrisc": {"score": null, "risk_level": null, "last_updated": null, "raw_answers": {}},
		"coffee_history": []
	}`, string(data))
}

func TestDecode_LegacyDocument(t *testing.T) {
	legacy := `{
		"user_profile": {"name": "Budi", "created_at": "2024-11-02T08:15:30.120000"},
		"findrisc": {"score": 13, "risk_level": "Sedang", "last_updated": "2024-11-02T08:20:00", "raw_answers": {"usia": "45-54 tahun"}},
		"coffee_history": [
			{"date": "2024-11-02T09:00:00.5", "drink": "Kopi Susu", "volume": "Large (≈473ml)", "quantity": 2, "topping": ["Nata De Coco (+5g)"], "sugar": 30.65},
			{"date": "not a date", "drink": "Americano", "volume": "Reguler (≈350ml)", "quantity": 1, "topping": [], "sugar": 0}
		]
	}`
	rec, err := Decode([]byte(legacy))
	require.NoError(t, err)

	assert.Equal(t, "Budi", rec.Profile.Name)
	require.NotNil(t, rec.Profile.CreatedAt)
	assert.Equal(t, 2024, rec.Profile.CreatedAt.Year())
	assert.Equal(t, domain.RiskModerate, rec.Assessment.RiskLevel)
	assert.Equal(t, "45-54 tahun", rec.Assessment.RawAnswers["usia"])

	require.Len(t, rec.Events, 2)
	assert.Equal(t, domain.SizeLarge, rec.Events[0].ServingSize)
	assert.Equal(t, 9, rec.Events[0].Timestamp.Hour())
	assert.True(t, rec.Events[0].Valid())
	assert.Equal(t, domain.SizeRegular, rec.Events[1].ServingSize)
	assert.False(t, rec.Events[1].Valid())
}

func TestDecode_DamagedHistoryEntriesAreKeptAsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{name: "sugar of the wrong type", entry: `{"date": "2025-06-02T09:00:00Z", "drink": "Kopi Susu", "volume": "regular", "quantity": 1, "topping": [], "sugar": "9.5"}`},
		{name: "sugar missing", entry: `{"date": "2025-06-02T09:00:00Z", "drink": "Kopi Susu", "volume": "regular", "quantity": 1, "topping": []}`},
		{name: "entry is not an object", entry: `"Kopi Susu"`},
		{name: "null entry", entry: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := `{
				"user_profile": {"name": "Sari"},
				"coffee_history": [
					{"date": "2025-06-02T08:00:00Z", "drink": "Caffe Latte", "volume": "regular", "quantity": 1, "topping": [], "sugar": 31.5},
					` + tt.entry + `
				]
			}`
			rec, err := Decode([]byte(data))
			require.NoError(t, err)

			assert.Equal(t, "Sari", rec.Profile.Name)
			require.Len(t, rec.Events, 2)
			assert.True(t, rec.Events[0].Valid())
			assert.Equal(t, 31.5, rec.Events[0].SugarGrams)
			assert.False(t, rec.Events[1].Valid())
		})
	}
}

func TestDecode_MalformedEntryStaysMalformedAfterRewrite(t *testing.T) {
	rec, err := Decode([]byte(`{"coffee_history": [{"date": "2025-06-02T09:00:00Z", "drink": "Kopi Susu", "sugar": "9.5"}]}`))
	require.NoError(t, err)

	data, err := Encode(rec)
	require.NoError(t, err)
	again, err := Decode(data)
	require.NoError(t, err)

	require.Len(t, again.Events, 1)
	assert.False(t, again.Events[0].Valid())
}

func TestDecode_MissingSections(t *testing.T) {
	rec, err := Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, domain.NewRecord(), rec)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte(`{"coffee_history": 3`))
	assert.Error(t, err)
}

func TestValidateKey(t *testing.T) {
	for _, ok := range []string{"default", "d1b2-uuid_like.v2"} {
		assert.NoError(t, ValidateKey(ok), ok)
	}
	for _, bad := range []string{"", ".", "..", "../etc", "a/b", "with space"} {
		assert.ErrorIs(t, ValidateKey(bad), domain.ErrInvalidInput, bad)
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
