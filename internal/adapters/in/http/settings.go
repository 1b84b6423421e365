package http

import (
	"fmt"
	"sync"

	"restaurant/internal/pkg/errs"
)

// Settings is a process-local, concurrency-safe view of the runtime
// configuration exposed over GET/PATCH /api/v1/config. Patching a value
// changes what the endpoint reports; components capture their configuration
// at construction, so a patched value takes effect on the next restart.
type Settings struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSettings creates a settings view seeded with the given values.
// The set of keys is fixed at construction; a patch may only change
// values of keys that already exist.
func NewSettings(initial map[string]string) *Settings {
	values := make(map[string]string, len(initial))
	for key, value := range initial {
		values[key] = value
	}
	return &Settings{values: values}
}

// Snapshot returns a copy of the current settings.
func (s *Settings) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]string, len(s.values))
	for key, value := range s.values {
		snapshot[key] = value
	}
	return snapshot
}

// Patch applies the given changes. A change naming an unknown key fails
// the whole patch and leaves the view untouched.
func (s *Settings) Patch(changes map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range changes {
		if _, ok := s.values[key]; !ok {
			return errs.NewValueIsInvalidErrorWithCause("config key",
				fmt.Errorf("unknown key %q", key))
		}
	}
	for key, value := range changes {
		s.values[key] = value
	}
	return nil
}
