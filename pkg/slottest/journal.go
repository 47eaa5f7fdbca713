package slottest

import (
	"strings"
	"sync"
	"testing"
)

// Journal records events in order. It is safe for concurrent use.
type Journal struct {
	mu     sync.Mutex
	events []string
}

// Record appends an event.
func (j *Journal) Record(event string) {
	j.mu.Lock()
	j.events = append(j.events, event)
	j.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (j *Journal) Events() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.events))
	copy(out, j.events)
	return out
}

// Count returns how many times event was recorded.
func (j *Journal) Count(event string) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for _, e := range j.events {
		if e == event {
			n++
		}
	}
	return n
}

// Reset forgets all events.
func (j *Journal) Reset() {
	j.mu.Lock()
	j.events = nil
	j.mu.Unlock()
}

// Expect fails the test unless the recorded events equal want exactly.
func (j *Journal) Expect(t testing.TB, want ...string) {
	t.Helper()
	got := j.Events()
	if len(got) != len(want) {
		t.Fatalf("events:\n  got  [%s]\n  want [%s]", strings.Join(got, " "), strings.Join(want, " "))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events:\n  got  [%s]\n  want [%s]", strings.Join(got, " "), strings.Join(want, " "))
		}
	}
}
