package search

import (
	"strings"
	"sync"
	"time"
)

// DefaultQuietPeriod is how long input must be idle before it is committed
const DefaultQuietPeriod = 400 * time.Millisecond

// Ticket is a scheduled commit of a raw input value. Only the most recently
// issued ticket can fire; scheduling a new one cancels every earlier one.
type Ticket struct {
	Seq   uint64
	Value string
	Delay time.Duration
}

// Debouncer collapses rapid input into a single committed value. It does not
// own a timer: the caller delivers the ticket back after Delay (the TUI does
// this with tea.Tick) and Fire decides whether it is still current.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	seq    uint64
	fired  uint64
	raw    string
	commit string
}

// NewDebouncer creates a Debouncer. A non-positive delay uses DefaultQuietPeriod.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultQuietPeriod
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule records a raw value and returns the ticket that will commit it
func (d *Debouncer) Schedule(value string) Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	d.raw = value
	return Ticket{Seq: d.seq, Value: value, Delay: d.delay}
}

// Fire commits the ticket's trimmed value if no newer ticket was scheduled.
// A superseded or cancelled ticket returns ok=false.
func (d *Debouncer) Fire(t Ticket) (committed string, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t.Seq != d.seq {
		return "", false
	}
	d.fired = t.Seq
	d.commit = strings.TrimSpace(t.Value)
	return d.commit, true
}

// Cancel invalidates every outstanding ticket and resets both values
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	d.fired = d.seq
	d.raw = ""
	d.commit = ""
}

// Pending returns the latest ticket if it has not fired or been cancelled
func (d *Debouncer) Pending() (Ticket, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seq == d.fired {
		return Ticket{}, false
	}
	return Ticket{Seq: d.seq, Value: d.raw, Delay: d.delay}, true
}

// Raw returns the latest scheduled value
func (d *Debouncer) Raw() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.raw
}

// Committed returns the last committed value
func (d *Debouncer) Committed() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.commit
}
