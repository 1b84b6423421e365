package kitchen_test

import (
	"sync"
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticket(t *testing.T, itemIndex int) kitchen.Ticket {
	t.Helper()
	return kitchen.Ticket{
		OrderID:   kernel.NewUUID(),
		ItemIndex: itemIndex,
		ProductID: int64(itemIndex + 1),
		Quantity:  1,
	}
}

func TestNewStation(t *testing.T) {
	t.Run("creates station with category filter", func(t *testing.T) {
		s, err := kitchen.NewStation("bebidas_calientes", []string{"BEBIDAS"}, 5)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, "bebidas_calientes", s.Name())
		assert.Equal(t, 5, s.Capacity())
		assert.True(t, s.Accepts("BEBIDAS"))
		assert.False(t, s.Accepts("POSTRES"))
	})

	t.Run("empty filter accepts everything", func(t *testing.T) {
		s, err := kitchen.NewStation("cocina", nil, 10)

		require.NoError(t, err)
		assert.True(t, s.Accepts("BEBIDAS"))
		assert.True(t, s.Accepts("whatever"))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := kitchen.NewStation("", []string{"BEBIDAS"}, 5)
		require.Error(t, err)
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		_, err := kitchen.NewStation("cocina", nil, 0)
		require.Error(t, err)
	})

	t.Run("rejects empty category label", func(t *testing.T) {
		_, err := kitchen.NewStation("cocina", []string{""}, 5)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var s kitchen.Station
		require.Error(t, s.Validate())

		var nilStation *kitchen.Station
		require.Error(t, nilStation.Validate())
	})
}

func TestStation_TryAccept(t *testing.T) {
	t.Run("accepts until capacity, then refuses", func(t *testing.T) {
		s, _ := kitchen.NewStation("postres", []string{"POSTRES"}, 2)

		assert.True(t, s.TryAccept(ticket(t, 0)))
		assert.True(t, s.TryAccept(ticket(t, 1)))
		assert.False(t, s.TryAccept(ticket(t, 2)))
		assert.Len(t, s.Queue(), 2)
	})

	t.Run("concurrent accepts never exceed capacity", func(t *testing.T) {
		const capacity = 8
		s, _ := kitchen.NewStation("cocina", nil, capacity)

		var wg sync.WaitGroup
		accepted := make(chan struct{}, 100)
		for i := range 100 {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				if s.TryAccept(ticket(t, idx)) {
					accepted <- struct{}{}
				}
			}(i)
		}
		wg.Wait()
		close(accepted)

		assert.Len(t, s.Queue(), capacity)
		assert.Equal(t, capacity, len(accepted))
	})
}

func TestStation_Dequeue(t *testing.T) {
	t.Run("pops FIFO and frees a slot", func(t *testing.T) {
		s, _ := kitchen.NewStation("panaderia", []string{"ENTRADAS"}, 1)
		first := ticket(t, 0)
		require.True(t, s.TryAccept(first))
		require.False(t, s.TryAccept(ticket(t, 1)))

		head, err := s.Dequeue()

		require.NoError(t, err)
		assert.Equal(t, first.OrderID, head.OrderID)
		assert.True(t, s.TryAccept(ticket(t, 2)), "dequeue freed the slot")
	})

	t.Run("empty station returns ErrStationEmpty", func(t *testing.T) {
		s, _ := kitchen.NewStation("panaderia", nil, 1)

		_, err := s.Dequeue()

		require.ErrorIs(t, err, kitchen.ErrStationEmpty)
	})
}

func TestStation_Report(t *testing.T) {
	s, _ := kitchen.NewStation("bebidas_frias", []string{"BEBIDAS"}, 4)
	require.True(t, s.TryAccept(ticket(t, 0)))

	report := s.Report()

	assert.Equal(t, "bebidas_frias", report.Station)
	assert.Equal(t, 1, report.QueueLength)
	assert.Equal(t, 4, report.Capacity)
	assert.InDelta(t, 0.25, report.Utilization, 0.0001)
}
