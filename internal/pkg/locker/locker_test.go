package locker_test

import (
	"sync"
	"testing"

	"restaurant/internal/pkg/locker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedLocker_SerializesSameKey(t *testing.T) {
	l := locker.NewKeyedLocker()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock("order-1")
			defer l.Unlock("order-1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyedLocker_DifferentKeysDoNotBlock(t *testing.T) {
	l := locker.NewKeyedLocker()

	l.Lock("a")
	done := make(chan struct{})
	go func() {
		l.Lock("b")
		l.Unlock("b")
		close(done)
	}()

	<-done // would deadlock if "b" waited on "a"
	l.Unlock("a")
}

func TestKeyedLocker_UnlockUnheldPanics(t *testing.T) {
	l := locker.NewKeyedLocker()
	require.Panics(t, func() { l.Unlock("never-locked") })
}
