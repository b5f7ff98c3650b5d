package services

import (
	"testing"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBurgerItem(t *testing.T) product.MenuItem {
	t.Helper()

	regular, err := product.NewOptionChoice("Regular", kernel.NewMoney(0))
	require.NoError(t, err)
	large, err := product.NewOptionChoice("Large", kernel.NewMoney(5000))
	require.NoError(t, err)
	size, err := product.NewOptionGroup("Size", true, []product.OptionChoice{regular, large})
	require.NoError(t, err)

	cheese, err := product.NewOptionChoice("Extra cheese", kernel.NewMoney(2000))
	require.NoError(t, err)
	bacon, err := product.NewOptionChoice("Bacon", kernel.NewMoney(3000))
	require.NoError(t, err)
	extras, err := product.NewOptionGroup("Extras", false, []product.OptionChoice{cheese, bacon})
	require.NoError(t, err)

	item, err := product.NewMenuItem(
		kernel.NewUUID(), kernel.NewUUID(), "Cheeseburger", kernel.NewMoney(15000),
		[]product.OptionGroup{size, extras})
	require.NoError(t, err)
	return item
}

func newPlainItem(t *testing.T, price int64) product.MenuItem {
	t.Helper()
	item, err := product.NewMenuItem(
		kernel.NewUUID(), kernel.NewUUID(), "Iced tea", kernel.NewMoney(price), nil)
	require.NoError(t, err)
	return item
}

func Test_LineTotal(t *testing.T) {
	engine := NewPricingEngine()

	t.Run("no options", func(t *testing.T) {
		total, chosen, err := engine.LineTotal(newPlainItem(t, 5000), 3, nil)
		require.NoError(t, err)

		assert.Equal(t, kernel.NewMoney(15000), total)
		assert.Empty(t, chosen)
	})

	t.Run("required and optional selections", func(t *testing.T) {
		total, chosen, err := engine.LineTotal(newBurgerItem(t), 2, product.OptionPicks{
			"Size":   {"Large"},
			"Extras": {"Extra cheese", "Bacon"},
		})
		require.NoError(t, err)

		// (150.00 + 50.00 + 20.00 + 30.00) × 2
		assert.Equal(t, kernel.NewMoney(50000), total)
		require.Len(t, chosen, 3)
		assert.Equal(t, "Size", chosen[0].Group)
		assert.Equal(t, "Large", chosen[0].Choice)
	})

	t.Run("optional group may be skipped", func(t *testing.T) {
		total, chosen, err := engine.LineTotal(newBurgerItem(t), 1, product.OptionPicks{
			"Size": {"Regular"},
		})
		require.NoError(t, err)

		assert.Equal(t, kernel.NewMoney(15000), total)
		assert.Len(t, chosen, 1)
	})

	t.Run("same inputs always yield same selection snapshot", func(t *testing.T) {
		item := newBurgerItem(t)
		picks := product.OptionPicks{"Size": {"Large"}, "Extras": {"Bacon"}}

		totalA, chosenA, err := engine.LineTotal(item, 1, picks)
		require.NoError(t, err)
		totalB, chosenB, err := engine.LineTotal(item, 1, picks)
		require.NoError(t, err)

		assert.Equal(t, totalA, totalB)
		assert.Equal(t, product.NormalizedKey(chosenA), product.NormalizedKey(chosenB))
	})
}

func Test_LineTotal_InvalidSelection(t *testing.T) {
	engine := NewPricingEngine()
	item := newBurgerItem(t)

	tests := map[string]struct {
		quantity int
		picks    product.OptionPicks
	}{
		"zero quantity":               {0, product.OptionPicks{"Size": {"Regular"}}},
		"negative quantity":           {-1, product.OptionPicks{"Size": {"Regular"}}},
		"required group not selected": {1, nil},
		"required group selected twice": {1, product.OptionPicks{
			"Size": {"Regular", "Large"}}},
		"unknown group": {1, product.OptionPicks{
			"Size": {"Regular"}, "Sauce": {"Garlic"}}},
		"unknown choice": {1, product.OptionPicks{
			"Size": {"Gigantic"}}},
		"duplicate optional choice": {1, product.OptionPicks{
			"Size": {"Regular"}, "Extras": {"Bacon", "Bacon"}}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := engine.LineTotal(item, tc.quantity, tc.picks)
			assert.ErrorIs(t, err, ErrInvalidSelection)
		})
	}
}

func Test_EstimateDeliveryFee(t *testing.T) {
	engine := NewPricingEngine()
	table := FeeTable{
		BaseFee:     kernel.NewMoney(2000),
		PerKm:       kernel.NewMoney(1000),
		MinFee:      kernel.NewMoney(3000),
		MaxFee:      kernel.NewMoney(15000),
		FlatDefault: kernel.NewMoney(5000),
	}
	require.NoError(t, table.Validate())

	origin, err := kernel.NewGeoPoint(14.5995, 120.9842)
	require.NoError(t, err)

	t.Run("two km ride costs forty pesos", func(t *testing.T) {
		// ~2 km north of origin: 1° latitude ≈ 111.19 km.
		dest, err := kernel.NewGeoPoint(14.5995+2.0/111.19, 120.9842)
		require.NoError(t, err)

		fee := engine.EstimateDeliveryFee(&origin, &dest, table)
		assert.Equal(t, kernel.NewMoney(4000), fee)
	})

	t.Run("short ride clamps to min fee", func(t *testing.T) {
		dest, err := kernel.NewGeoPoint(14.5995, 120.9842)
		require.NoError(t, err)

		fee := engine.EstimateDeliveryFee(&origin, &dest, table)
		assert.Equal(t, table.MinFee, fee)
	})

	t.Run("long ride clamps to max fee", func(t *testing.T) {
		dest, err := kernel.NewGeoPoint(10.3157, 123.8854) // Cebu, ~570 km away
		require.NoError(t, err)

		fee := engine.EstimateDeliveryFee(&origin, &dest, table)
		assert.Equal(t, table.MaxFee, fee)
	})

	t.Run("missing coordinates fall back to flat default", func(t *testing.T) {
		assert.Equal(t, table.FlatDefault, engine.EstimateDeliveryFee(nil, &origin, table))
		assert.Equal(t, table.FlatDefault, engine.EstimateDeliveryFee(&origin, nil, table))
		assert.Equal(t, table.FlatDefault, engine.EstimateDeliveryFee(nil, nil, table))
	})
}

func Test_FeeTable_Validate(t *testing.T) {
	bad := FeeTable{MinFee: kernel.NewMoney(5000), MaxFee: kernel.NewMoney(1000)}
	assert.Error(t, bad.Validate())

	negative := FeeTable{PerKm: kernel.NewMoney(-100)}
	assert.Error(t, negative.Validate())
}
