package liststate

import (
	"sync"
	"testing"
	"time"
)

// Three keystrokes inside one window must produce exactly one emit
// carrying the last value, roughly delay after the last keystroke.
func TestDebounceCoalescesKeystrokes(t *testing.T) {
	var (
		mu     sync.Mutex
		values []string
	)
	d := NewDebouncer(80*time.Millisecond, func(text string) {
		mu.Lock()
		values = append(values, text)
		mu.Unlock()
	})

	d.Input("b")
	time.Sleep(20 * time.Millisecond)
	d.Input("bu")
	time.Sleep(20 * time.Millisecond)
	d.Input("budi")

	time.Sleep(40 * time.Millisecond)
	mu.Lock()
	early := len(values)
	mu.Unlock()
	if early != 0 {
		t.Fatalf("emit fired before the delay elapsed")
	}

	time.Sleep(120 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(values) != 1 {
		t.Fatalf("expected exactly one emit, got %d (%v)", len(values), values)
	}
	if values[0] != "budi" {
		t.Fatalf("expected last-typed value, got %q", values[0])
	}
}

func TestDebounceStopCancelsPending(t *testing.T) {
	var (
		mu    sync.Mutex
		fired bool
	)
	d := NewDebouncer(50*time.Millisecond, func(string) {
		mu.Lock()
		fired = true
		mu.Unlock()
	})

	d.Input("x")
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if fired {
		t.Fatalf("emit fired after Stop")
	}
}

func TestDebounceDefaultDelay(t *testing.T) {
	d := NewDebouncer(0, func(string) {})
	if d.delay != DefaultSearchDelay {
		t.Fatalf("zero delay should fall back to default, got %v", d.delay)
	}
}
