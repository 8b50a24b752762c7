package harness

import "sync/atomic"

// clock stamps trace events with strictly increasing sequence numbers,
// starting at 1 for the first step of a run.
type clock struct {
	seq atomic.Int64
}

// Next returns the next sequence number.
func (c *clock) Next() int64 {
	return c.seq.Add(1)
}
