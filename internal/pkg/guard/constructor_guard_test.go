package guard_test

import (
	"errors"
	"testing"

	"restaurant/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("constructed_guard_passes_validation", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_names_the_constructor", func(t *testing.T) {
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// Commands embed the guard to reject zero-value instances; this mirrors how
// the application layer uses it.
func TestConstructorGuardInCommand(t *testing.T) {
	var errDraftNotConstructed = errors.New("Draft must be created via NewDraft")

	type Draft struct {
		table int
		g     guard.ConstructorGuard
	}

	newDraft := func(table int) (Draft, error) {
		if table <= 0 {
			return Draft{}, errors.New("table must be positive")
		}
		return Draft{table: table, g: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_command_validates", func(t *testing.T) {
		d, err := newDraft(4)
		require.NoError(t, err)
		require.NoError(t, d.g.Validate(errDraftNotConstructed))
		assert.Equal(t, 4, d.table)
	})

	t.Run("zero_value_command_rejected", func(t *testing.T) {
		var d Draft
		err := d.g.Validate(errDraftNotConstructed)
		require.Error(t, err)
		assert.Equal(t, errDraftNotConstructed, err)
	})
}
