package checker

import "sync"

// Collector accumulates one [Outcome] per input target into index-addressed
// slots.
//
// Each slot is written exactly once, by whichever worker handled that
// target, so the final report preserves input order no matter which workers
// finished first. All methods are safe for concurrent use; [Collector.Report]
// is intended to be called only after the dispatcher has joined all workers.
type Collector struct {
	mu    sync.RWMutex
	slots []Outcome
	set   []bool
}

// NewCollector creates a collector with one slot per input target.
func NewCollector(n int) *Collector {
	return &Collector{
		slots: make([]Outcome, n),
		set:   make([]bool, n),
	}
}

// Put records the outcome for the target at the given input position.
// Positions outside the input range are ignored.
func (c *Collector) Put(index int, out Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.slots) {
		return
	}
	c.slots[index] = out
	c.set[index] = true
}

// Filled returns how many slots have been written so far.
func (c *Collector) Filled() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, ok := range c.set {
		if ok {
			n++
		}
	}
	return n
}

// Complete reports whether every slot has been written.
func (c *Collector) Complete() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, ok := range c.set {
		if !ok {
			return false
		}
	}
	return true
}

// Report returns a copy of all outcomes in input order.
func (c *Collector) Report() Report {
	c.mu.RLock()
	defer c.mu.RUnlock()

	report := make(Report, len(c.slots))
	copy(report, c.slots)
	return report
}
