package sugar

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/glucoffee/internal/domain"
)

// Unknown beverage handling.
const (
	UnknownReject  = "reject"
	UnknownDefault = "default"
)

// Policy holds the tunable pricing constants.
type Policy struct {
	LargeMultiplier      float64
	AdditiveGrams        float64
	MinQuantity          int
	MaxQuantity          int
	UnknownBeverage      string
	DefaultBeverageGrams float64
}

// DefaultPolicy returns the stock pricing rules.
func DefaultPolicy() Policy {
	return Policy{
		LargeMultiplier:      1.35,
		AdditiveGrams:        5,
		MinQuantity:          1,
		MaxQuantity:          10,
		UnknownBeverage:      UnknownReject,
		DefaultBeverageGrams: 15,
	}
}

// Order is a single logging request before pricing.
type Order struct {
	BeverageID string
	Size       domain.ServingSize
	Quantity   int
	Additives  []string
}

// Calculator prices orders under a fixed policy.
type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy}
}

// Policy returns the pricing rules in effect.
func (c *Calculator) Policy() Policy { return c.policy }

// Compute returns the added sugar for the order:
//
//	base * sizeFactor * quantity + len(additives) * additiveGrams
//
// Additives are charged once per order, not per cup. The result is rounded to
// hundredths of a gram.
func (c *Calculator) Compute(o Order) (float64, error) {
	base, err := c.baseGrams(o.BeverageID)
	if err != nil {
		return 0, err
	}
	if o.Quantity < c.policy.MinQuantity || o.Quantity > c.policy.MaxQuantity {
		return 0, fmt.Errorf("%w: %d is outside [%d, %d]",
			domain.ErrInvalidQuantity, o.Quantity, c.policy.MinQuantity, c.policy.MaxQuantity)
	}
	factor, err := c.sizeFactor(o.Size)
	if err != nil {
		return 0, err
	}
	if err := validateAdditives(o.Additives); err != nil {
		return 0, err
	}

	grams := base*factor*float64(o.Quantity) + float64(len(o.Additives))*c.policy.AdditiveGrams
	return math.Round(grams*100) / 100, nil
}

// NewEvent prices the order and returns the event to append. The canonical
// beverage ID and additive keys are stored, not the caller's spelling.
func (c *Calculator) NewEvent(o Order, now time.Time) (domain.ConsumptionEvent, error) {
	grams, err := c.Compute(o)
	if err != nil {
		return domain.ConsumptionEvent{}, err
	}

	id := o.BeverageID
	if b, ok := LookupBeverage(id); ok {
		id = b.ID
	}
	size := o.Size
	if size == "" {
		size = domain.SizeRegular
	}
	additives := make([]string, 0, len(o.Additives))
	for _, key := range o.Additives {
		a, _ := LookupAdditive(key)
		additives = append(additives, a.Key)
	}

	return domain.ConsumptionEvent{
		Timestamp:   now,
		BeverageID:  id,
		ServingSize: size,
		Quantity:    o.Quantity,
		Additives:   additives,
		SugarGrams:  grams,
	}, nil
}

func (c *Calculator) baseGrams(id string) (float64, error) {
	if b, ok := LookupBeverage(id); ok {
		return b.BaseGrams, nil
	}
	if c.policy.UnknownBeverage == UnknownDefault && normalize(id) != "" {
		return c.policy.DefaultBeverageGrams, nil
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrUnknownBeverage, id)
}

func (c *Calculator) sizeFactor(size domain.ServingSize) (float64, error) {
	switch size {
	case domain.SizeRegular, "":
		return 1, nil
	case domain.SizeLarge:
		return c.policy.LargeMultiplier, nil
	}
	return 0, fmt.Errorf("%w: serving size %q", domain.ErrInvalidInput, size)
}

func validateAdditives(keys []string) error {
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		a, ok := LookupAdditive(key)
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownAdditive, key)
		}
		if seen[a.Key] {
			return fmt.Errorf("%w: %q listed twice", domain.ErrUnknownAdditive, key)
		}
		seen[a.Key] = true
	}
	return nil
}
