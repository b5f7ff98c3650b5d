package cart

import (
	"testing"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/product"
	"hatod/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestLine(t *testing.T, merchantID kernel.UUID, item kernel.UUID,
	qty int, price kernel.Money, options []product.ChosenOption) *Line {
	t.Helper()
	line, err := NewLine(kernel.NewUUID(), item, merchantID, "Chicken Adobo", qty, price, options)
	require.NoError(t, err)
	return line
}

func Test_NewLine_RejectsInvalidInput(t *testing.T) {
	merchantID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	_, err := NewLine(kernel.NewUUID(), itemID, merchantID, "", 1, kernel.NewMoney(100), nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = NewLine(kernel.NewUUID(), itemID, merchantID, "Adobo", 0, kernel.NewMoney(100), nil)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = NewLine(kernel.NewUUID(), itemID, merchantID, "Adobo", -3, kernel.NewMoney(100), nil)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = NewLine(kernel.NewUUID(), itemID, merchantID, "Adobo", 1, kernel.NewMoney(-100), nil)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = NewLine(kernel.UUID{}, itemID, merchantID, "Adobo", 1, kernel.NewMoney(100), nil)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func Test_Line_Total_IncludesSurcharges(t *testing.T) {
	options := []product.ChosenOption{
		{Group: "Size", Choice: "Large", Surcharge: kernel.NewMoney(5000)},
	}
	line := newTestLine(t, kernel.NewUUID(), kernel.NewUUID(), 2, kernel.NewMoney(15000), options)

	// (150.00 + 50.00) × 2
	assert.Equal(t, kernel.NewMoney(40000), line.Total())
}

func Test_AddLine_MergesOnSameItemAndOptions(t *testing.T) {
	customerID := kernel.NewUUID()
	merchantID := kernel.NewUUID()
	itemID := kernel.NewUUID()
	options := []product.ChosenOption{
		{Group: "Size", Choice: "Large", Surcharge: kernel.NewMoney(5000)},
		{Group: "Spice", Choice: "Mild", Surcharge: kernel.NewMoney(0)},
	}

	draft, err := NewDraft(customerID, testNow)
	require.NoError(t, err)

	first := newTestLine(t, merchantID, itemID, 2, kernel.NewMoney(15000), options)
	require.NoError(t, draft.AddLine(first, testNow))

	// Same item, same options in a different order: normalized keys match.
	reordered := []product.ChosenOption{options[1], options[0]}
	second := newTestLine(t, merchantID, itemID, 1, kernel.NewMoney(15000), reordered)
	require.NoError(t, draft.AddLine(second, testNow))

	require.Len(t, draft.Lines(), 1)
	assert.Equal(t, 3, draft.Lines()[0].Quantity())
	assert.Equal(t, first.ID(), draft.Lines()[0].ID())
}

func Test_AddLine_DifferentOptionsCreateSeparateLines(t *testing.T) {
	merchantID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	draft, err := NewDraft(kernel.NewUUID(), testNow)
	require.NoError(t, err)

	large := []product.ChosenOption{{Group: "Size", Choice: "Large", Surcharge: kernel.NewMoney(5000)}}
	small := []product.ChosenOption{{Group: "Size", Choice: "Small", Surcharge: kernel.NewMoney(0)}}

	require.NoError(t, draft.AddLine(newTestLine(t, merchantID, itemID, 1, kernel.NewMoney(15000), large), testNow))
	require.NoError(t, draft.AddLine(newTestLine(t, merchantID, itemID, 1, kernel.NewMoney(15000), small), testNow))

	assert.Len(t, draft.Lines(), 2)
}

func Test_Draft_Subtotal(t *testing.T) {
	merchantID := kernel.NewUUID()
	draft, err := NewDraft(kernel.NewUUID(), testNow)
	require.NoError(t, err)

	require.NoError(t, draft.AddLine(
		newTestLine(t, merchantID, kernel.NewUUID(), 2, kernel.NewMoney(15000), nil), testNow))
	require.NoError(t, draft.AddLine(
		newTestLine(t, merchantID, kernel.NewUUID(), 1, kernel.NewMoney(5000), nil), testNow))

	// 150.00 × 2 + 50.00
	assert.Equal(t, kernel.NewMoney(35000), draft.Subtotal())
}

func Test_UpdateQuantity(t *testing.T) {
	merchantID := kernel.NewUUID()
	draft, err := NewDraft(kernel.NewUUID(), testNow)
	require.NoError(t, err)

	line := newTestLine(t, merchantID, kernel.NewUUID(), 2, kernel.NewMoney(15000), nil)
	require.NoError(t, draft.AddLine(line, testNow))

	t.Run("sets new quantity", func(t *testing.T) {
		require.NoError(t, draft.UpdateQuantity(line.ID(), 5, testNow))
		assert.Equal(t, 5, draft.Lines()[0].Quantity())
	})

	t.Run("unknown line is not found", func(t *testing.T) {
		err = draft.UpdateQuantity(kernel.NewUUID(), 1, testNow)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		require.NoError(t, draft.UpdateQuantity(line.ID(), 0, testNow))
		assert.True(t, draft.IsEmpty())
	})
}

func Test_RemoveLine(t *testing.T) {
	merchantID := kernel.NewUUID()
	draft, err := NewDraft(kernel.NewUUID(), testNow)
	require.NoError(t, err)

	keep := newTestLine(t, merchantID, kernel.NewUUID(), 1, kernel.NewMoney(5000), nil)
	drop := newTestLine(t, merchantID, kernel.NewUUID(), 1, kernel.NewMoney(15000), nil)
	require.NoError(t, draft.AddLine(keep, testNow))
	require.NoError(t, draft.AddLine(drop, testNow))

	require.NoError(t, draft.RemoveLine(drop.ID(), testNow))

	require.Len(t, draft.Lines(), 1)
	assert.Equal(t, keep.ID(), draft.Lines()[0].ID())

	err = draft.RemoveLine(drop.ID(), testNow)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func Test_Clear(t *testing.T) {
	draft, err := NewDraft(kernel.NewUUID(), testNow)
	require.NoError(t, err)
	require.NoError(t, draft.AddLine(
		newTestLine(t, kernel.NewUUID(), kernel.NewUUID(), 1, kernel.NewMoney(5000), nil), testNow))

	later := testNow.Add(time.Minute)
	draft.Clear(later)

	assert.True(t, draft.IsEmpty())
	assert.Equal(t, later, draft.UpdatedAt())
}

func Test_MerchantID(t *testing.T) {
	t.Run("empty draft", func(t *testing.T) {
		draft, err := NewDraft(kernel.NewUUID(), testNow)
		require.NoError(t, err)

		_, err = draft.MerchantID()
		assert.ErrorIs(t, err, ErrDraftIsEmpty)
	})

	t.Run("single merchant", func(t *testing.T) {
		merchantID := kernel.NewUUID()
		draft, err := NewDraft(kernel.NewUUID(), testNow)
		require.NoError(t, err)
		require.NoError(t, draft.AddLine(
			newTestLine(t, merchantID, kernel.NewUUID(), 1, kernel.NewMoney(5000), nil), testNow))
		require.NoError(t, draft.AddLine(
			newTestLine(t, merchantID, kernel.NewUUID(), 1, kernel.NewMoney(15000), nil), testNow))

		got, err := draft.MerchantID()
		require.NoError(t, err)
		assert.True(t, got.IsEqual(merchantID))
	})

	t.Run("mixed merchants", func(t *testing.T) {
		draft, err := NewDraft(kernel.NewUUID(), testNow)
		require.NoError(t, err)
		require.NoError(t, draft.AddLine(
			newTestLine(t, kernel.NewUUID(), kernel.NewUUID(), 1, kernel.NewMoney(5000), nil), testNow))
		require.NoError(t, draft.AddLine(
			newTestLine(t, kernel.NewUUID(), kernel.NewUUID(), 1, kernel.NewMoney(15000), nil), testNow))

		_, err = draft.MerchantID()
		assert.ErrorIs(t, err, ErrDraftHasMultipleMerchants)
	})
}

func Test_RestoreDraft_RejectsDuplicateLines(t *testing.T) {
	merchantID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	a := newTestLine(t, merchantID, itemID, 1, kernel.NewMoney(5000), nil)
	b := newTestLine(t, merchantID, itemID, 2, kernel.NewMoney(5000), nil)

	_, err := RestoreDraft(kernel.NewUUID(), []*Line{a, b}, testNow)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_Draft_NotConstructed(t *testing.T) {
	var draft Draft
	err := draft.AddLine(nil, testNow)
	assert.ErrorIs(t, err, ErrDraftIsNotConstructed)
}
