package order_test

import (
	"strings"
	"testing"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExtras(t *testing.T) {
	t.Run("accepts bool, number, and string kinds", func(t *testing.T) {
		extras, err := order.NewExtras(map[string]any{
			"decaf":        true,
			"sugar_spoons": 2,
			"milk":         "oat",
			"discount":     0.15,
		})

		require.NoError(t, err)
		assert.Equal(t, order.ExtraKindBool, extras["decaf"].Kind())
		assert.True(t, extras["decaf"].Bool())
		assert.Equal(t, order.ExtraKindNumber, extras["sugar_spoons"].Kind())
		assert.InDelta(t, 2.0, extras["sugar_spoons"].Number(), 0.0001)
		assert.Equal(t, order.ExtraKindString, extras["milk"].Kind())
		assert.Equal(t, "oat", extras["milk"].Text())
		assert.InDelta(t, 0.15, extras["discount"].Number(), 0.0001)
	})

	t.Run("rejects unsupported kinds", func(t *testing.T) {
		_, err := order.NewExtras(map[string]any{"toppings": []string{"nuts"}})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "unsupported kind")
	})

	t.Run("rejects oversized mappings", func(t *testing.T) {
		raw := make(map[string]any)
		for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
			raw[k] = true
		}

		_, err := order.NewExtras(raw)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects empty and oversized keys", func(t *testing.T) {
		_, err := order.NewExtras(map[string]any{"": true})
		require.Error(t, err)

		_, err = order.NewExtras(map[string]any{strings.Repeat("x", 41): true})
		require.Error(t, err)
	})

	t.Run("empty mapping is fine", func(t *testing.T) {
		extras, err := order.NewExtras(nil)
		require.NoError(t, err)
		assert.Empty(t, extras)
	})
}

func TestExtras_Copy(t *testing.T) {
	extras, err := order.NewExtras(map[string]any{"milk": "oat"})
	require.NoError(t, err)

	cp := extras.Copy()
	cp["milk"] = order.StringExtra("soy")

	assert.Equal(t, "oat", extras["milk"].Text())
}

func TestNewItem(t *testing.T) {
	extras, _ := order.NewExtras(map[string]any{"decaf": true})

	t.Run("creates a valid line with a price snapshot", func(t *testing.T) {
		item, err := order.NewItem(6, 3, 450, extras)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, int64(6), item.ProductID())
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, int64(450), item.UnitPriceCents())
		assert.Equal(t, int64(1350), item.SubtotalCents())
		assert.True(t, item.Extras()["decaf"].Bool())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := order.NewItem(6, 0, 450, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity")

		_, err = order.NewItem(6, -2, 450, nil)
		require.Error(t, err)
	})

	t.Run("rejects invalid product reference", func(t *testing.T) {
		_, err := order.NewItem(0, 1, 450, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "productID")
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := order.NewItem(6, 1, -450, nil)
		require.Error(t, err)
	})

	t.Run("item owns a copy of extras", func(t *testing.T) {
		raw, _ := order.NewExtras(map[string]any{"milk": "oat"})
		item, err := order.NewItem(6, 1, 450, raw)
		require.NoError(t, err)

		raw["milk"] = order.StringExtra("soy")

		assert.Equal(t, "oat", item.Extras()["milk"].Text())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var item order.Item
		require.Error(t, item.Validate())
	})
}
