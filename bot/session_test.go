package bot

import (
	"sync"
	"testing"
)

func TestSessionsDefaultPosition(t *testing.T) {
	t.Parallel()

	s := newSessions()
	pos := s.get(42)
	if pos.State != StateMainMenu || pos.Category != "" || pos.Subcategory != "" {
		t.Fatalf("fresh position = %+v, want main menu zero value", pos)
	}
}

func TestSessionsOverwriteAndReset(t *testing.T) {
	t.Parallel()

	s := newSessions()
	s.set(1, Position{State: StateCategory, Category: "KF"})
	s.set(1, Position{State: StateSubcategory, Category: "KF", Subcategory: "SMS"})

	if got := s.get(1); got.State != StateSubcategory || got.Subcategory != "SMS" {
		t.Fatalf("position = %+v, want latest selection", got)
	}

	s.reset(1)
	if got := s.get(1); got.State != StateMainMenu {
		t.Fatalf("position after reset = %+v, want main menu", got)
	}
}

func TestSessionsConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := newSessions()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.set(id, Position{State: StateCategory, Category: "KF"})
			_ = s.get(id)
			s.reset(id)
		}(int64(i % 4))
	}
	wg.Wait()
}
