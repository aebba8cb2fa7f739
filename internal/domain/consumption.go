package domain

import (
	"math"
	"time"
)

// ConsumptionEvent is one logged order. SugarGrams is computed at creation and
// never recomputed from the beverage table.
type ConsumptionEvent struct {
	Timestamp   time.Time
	BeverageID  string
	ServingSize ServingSize
	Quantity    int
	Additives   []string
	SugarGrams  float64
}

// Valid reports whether the event can take part in aggregates.
func (e ConsumptionEvent) Valid() bool {
	if e.Timestamp.IsZero() {
		return false
	}
	if math.IsNaN(e.SugarGrams) || math.IsInf(e.SugarGrams, 0) || e.SugarGrams < 0 {
		return false
	}
	return true
}
