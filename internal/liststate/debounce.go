package liststate

import (
	"sync"
	"time"
)

const DefaultSearchDelay = 400 * time.Millisecond

// Debouncer delays search keystrokes: the timer resets on every input
// and only the last value within the delay window is emitted.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	emit  func(text string)
}

func NewDebouncer(delay time.Duration, emit func(text string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	return &Debouncer{delay: delay, emit: emit}
}

// Input registers a keystroke, restarting the delay window.
func (d *Debouncer) Input(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.emit(text)
	})
}

// Stop cancels any pending emit, e.g. when the page unmounts.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
