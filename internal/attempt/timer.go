package attempt

import (
	"fmt"
	"sync"
	"time"
)

// Ticker is the part of time.Ticker the attempt timer needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc builds a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewRealTicker is the production TickerFunc.
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Timer counts whole ticks for one attempt. Each tick adds exactly one
// interval. After Stop no tick is ever applied.
type Timer struct {
	mu        sync.Mutex
	interval  time.Duration
	newTicker TickerFunc
	elapsed   time.Duration
	started   bool
	frozen    bool
	halted    bool
	quit      chan struct{}
	done      chan struct{}
}

func NewTimer(interval time.Duration, newTicker TickerFunc) *Timer {
	if interval <= 0 {
		interval = time.Second
	}
	if newTicker == nil {
		newTicker = NewRealTicker
	}
	return &Timer{
		interval:  interval,
		newTicker: newTicker,
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start begins ticking. It is a no-op on a started or halted timer.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.halted {
		return
	}
	t.started = true
	ticker := t.newTicker(t.interval)
	go t.run(ticker)
}

func (t *Timer) run(ticker Ticker) {
	defer close(t.done)
	defer ticker.Stop()
	for {
		select {
		case <-t.quit:
			return
		case <-ticker.C():
			t.mu.Lock()
			if !t.halted {
				t.elapsed += t.interval
			}
			t.mu.Unlock()
		}
	}
}

// Stop freezes the timer and returns the frozen elapsed time. Later calls
// return the same value.
func (t *Timer) Stop() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frozen = true
	t.haltLocked()
	return t.elapsed
}

// Close halts the timer without marking it frozen. Used when the attempt
// is replaced or abandoned.
func (t *Timer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.haltLocked()
}

func (t *Timer) haltLocked() {
	if t.halted {
		return
	}
	t.halted = true
	close(t.quit)
}

// Wait blocks until the ticking goroutine has exited. It returns at once
// for a timer that was never started.
func (t *Timer) Wait() {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()
	if started {
		<-t.done
	}
}

func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

func (t *Timer) Frozen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frozen
}

// FormatClock renders d as "HH : MM : SS", hours wrapping at 24.
func FormatClock(d time.Duration) string {
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d : %02d : %02d", (total/3600)%24, (total/60)%60, total%60)
}
