package scheduler

import "boolevald/pkg/types"

// Status returns a read-only snapshot of the run. Safe to call from any
// goroutine at any cadence; it never blocks on the decode round.
func (s *Scheduler) Status() types.StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := types.StatusSnapshot{
		QueueDepth: s.queue.len(),
		Active:     len(s.active),
		Correct:    s.conf.Correct(),
		Incorrect:  s.conf.Incorrect(),
	}
	if s.bctx != nil {
		snap.Utilization = s.bctx.Utilization()
	}
	return snap
}
