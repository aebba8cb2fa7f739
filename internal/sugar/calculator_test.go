package sugar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/glucoffee/internal/domain"
)

func TestCompute_Americano(t *testing.T) {
	c := NewCalculator(DefaultPolicy())
	g, err := c.Compute(Order{BeverageID: "Americano", Size: domain.SizeRegular, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, g)
}

func TestCompute_LatteTwoCups(t *testing.T) {
	c := NewCalculator(DefaultPolicy())
	g, err := c.Compute(Order{BeverageID: "Caffe Latte", Size: domain.SizeRegular, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 63.0, g)
}

func TestCompute_LargeMultiplier(t *testing.T) {
	c := NewCalculator(DefaultPolicy())
	g, err := c.Compute(Order{BeverageID: "Cappuccino", Size: domain.SizeLarge, Quantity: 1})
	require.NoError(t, err)
	assert.InDelta(t, 18.36, g, 1e-9)
}

func TestCompute_AdditivesAreOrderInvariant(t *testing.T) {
	c := NewCalculator(DefaultPolicy())
	additives := []string{"nata_de_coco", "whipped_cream", "oat_milk"}

	for _, b := range Menu {
		for _, size := range []domain.ServingSize{domain.SizeRegular, domain.SizeLarge} {
			for qty := 1; qty <= 10; qty++ {
				plain, err := c.Compute(Order{BeverageID: b.ID, Size: size, Quantity: qty})
				require.NoError(t, err)
				with, err := c.Compute(Order{BeverageID: b.ID, Size: size, Quantity: qty, Additives: additives})
				require.NoError(t, err)
				assert.InDelta(t, 15.0, with-plain, 0.011, "%s %s x%d", b.ID, size, qty)
			}
		}
	}
}

func TestCompute_CappuccinoWithOneAdditive(t *testing.T) {
	c := NewCalculator(DefaultPolicy())
	g, err := c.Compute(Order{BeverageID: "Cappuccino", Quantity: 1, Additives: []string{"brown_sugar_jelly"}})
	require.NoError(t, err)
	assert.InDelta(t, 18.6, g, 1e-9)
}

func TestCompute_Quantity(t *testing.T) {
	c := NewCalculator(DefaultPolicy())
	for _, qty := range []int{0, -1, 11} {
		_, err := c.Compute(Order{BeverageID: "Kopi Susu", Quantity: qty})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "qty %d", qty)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	p := DefaultPolicy()
	p.MaxQuantity = 20
	g, err := NewCalculator(p).Compute(Order{BeverageID: "Kopi Susu", Quantity: 20})
	require.NoError(t, err)
	assert.Equal(t, 190.0, g)
}

func TestCompute_UnknownBeverage(t *testing.T) {
	_, err := NewCalculator(DefaultPolicy()).Compute(Order{BeverageID: "Pumpkin Spice", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrUnknownBeverage)

	p := DefaultPolicy()
	p.UnknownBeverage = UnknownDefault
	c := NewCalculator(p)
	g, err := c.Compute(Order{BeverageID: "Pumpkin Spice", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 30.0, g)

	_, err = c.Compute(Order{BeverageID: "  ", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrUnknownBeverage)
}

func TestCompute_InvalidAdditives(t *testing.T) {
	c := NewCalculator(DefaultPolicy())
	_, err := c.Compute(Order{BeverageID: "Kopi Susu", Quantity: 1, Additives: []string{"sprinkles"}})
	assert.ErrorIs(t, err, domain.ErrUnknownAdditive)

	_, err = c.Compute(Order{BeverageID: "Kopi Susu", Quantity: 1, Additives: []string{"oat_milk", "oat-milk"}})
	assert.ErrorIs(t, err, domain.ErrUnknownAdditive)
}

func TestCompute_InvalidSize(t *testing.T) {
	_, err := NewCalculator(DefaultPolicy()).Compute(Order{BeverageID: "Kopi Susu", Size: "venti", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewEvent_Canonicalizes(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)
	c := NewCalculator(DefaultPolicy())

	ev, err := c.NewEvent(Order{BeverageID: "caffe-latte", Quantity: 1, Additives: []string{"Whipped Cream"}}, now)
	require.NoError(t, err)
	assert.Equal(t, "Caffe Latte", ev.BeverageID)
	assert.Equal(t, domain.SizeRegular, ev.ServingSize)
	assert.Equal(t, []string{"whipped_cream"}, ev.Additives)
	assert.Equal(t, 36.5, ev.SugarGrams)
	assert.Equal(t, now, ev.Timestamp)
	assert.True(t, ev.Valid())
}

func TestNewEvent_RejectsBeforeBuilding(t *testing.T) {
	_, err := NewCalculator(DefaultPolicy()).NewEvent(Order{BeverageID: "Caffe Latte", Quantity: 0}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestMenu_HasFifteenUniqueBeverages(t *testing.T) {
	assert.Len(t, Menu, 15)
	assert.Len(t, beverageIndex, 15)
	for _, b := range Menu {
		assert.GreaterOrEqual(t, b.BaseGrams, 0.0, b.ID)
	}
}
