package noop

import "github.com/gogpu/rendergraph/hal"

type queue struct {
	submitted []hal.CommandEncoder
}

// Submissions returns every command buffer handed to Submit, in order.
func (q *queue) Submissions() []hal.CommandEncoder { return q.submitted }

func (q *queue) Submit(cb hal.CommandEncoder, wait []hal.Semaphore, signal []hal.Semaphore, signalFence hal.Fence) error {
	q.submitted = append(q.submitted, cb)
	if f, ok := signalFence.(*fence); ok {
		f.signaled.Store(true)
	}
	return nil
}
