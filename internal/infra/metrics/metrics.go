package metrics

import "sync/atomic"

type Counters struct {
	CheckoutsProcessed uint64
	CheckoutsSucceeded uint64
	CheckoutsFailed    uint64
	CheckoutsDeclined  uint64
}

func (c *Counters) IncProcessed() {
	atomic.AddUint64(&c.CheckoutsProcessed, 1)
}

func (c *Counters) IncSucceeded() {
	atomic.AddUint64(&c.CheckoutsSucceeded, 1)
}

// IncFailed counts validation rejections.
func (c *Counters) IncFailed() {
	atomic.AddUint64(&c.CheckoutsFailed, 1)
}

// IncDeclined counts simulated processor declines.
func (c *Counters) IncDeclined() {
	atomic.AddUint64(&c.CheckoutsDeclined, 1)
}
