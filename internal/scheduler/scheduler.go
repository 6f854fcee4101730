package scheduler

import (
	"context"
	"fmt"
	"sync"

	"boolevald/internal/backend"
	"boolevald/pkg/types"
)

// Scheduler owns the active session set and drives the round loop. All
// mutation happens on the goroutine running Run; the mutex exists so
// Status() can be served from the HTTP layer while a round is in flight.
type Scheduler struct {
	mu    sync.RWMutex
	cfg   Config
	model backend.Model
	bctx  backend.Context

	queue     taskQueue
	active    []*session
	capacity  int // current, shrinks under exhaustion, floor 1
	requested int
	conf      Confusion
}

// New builds a scheduler over the given model/context pair with the full
// task list queued. Capacity starts at the requested value.
func New(model backend.Model, bctx backend.Context, tasks []types.Task, cfg Config) *Scheduler {
	cfg = cfg.withDefaults()
	s := &Scheduler{
		cfg:       cfg,
		model:     model,
		bctx:      bctx,
		capacity:  cfg.Capacity,
		requested: cfg.Capacity,
	}
	for _, t := range tasks {
		s.queue.push(t)
	}
	queueDepth.Set(float64(s.queue.len()))
	currentCapacity.Set(float64(s.capacity))
	return s
}

// Ready reports whether the scheduler has a usable backend context.
func (s *Scheduler) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bctx != nil
}

// Run executes the round loop until every task is resolved:
// admit up to capacity, one shared decode round (with internal retry on
// exhaustion), advance each session by one token, drain finished sessions.
// A fatal decode error or context cancellation aborts the run; every open
// session is disposed on the way out.
func (s *Scheduler) Run(ctx context.Context) (types.Report, error) {
	grammar := backend.BoolAnswer()
	for {
		if err := ctx.Err(); err != nil {
			s.closeAll()
			return types.Report{}, err
		}
		s.mu.RLock()
		done := s.queue.len() == 0 && len(s.active) == 0
		s.mu.RUnlock()
		if done {
			break
		}
		if err := s.admit(); err != nil {
			s.closeAll()
			return types.Report{}, err
		}
		if err := s.runRound(); err != nil {
			s.closeAll()
			return types.Report{}, err
		}
		if err := s.advance(grammar); err != nil {
			s.closeAll()
			return types.Report{}, err
		}
		s.drain()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conf.Report(), nil
}

// admit dequeues tasks FIFO and starts sessions until the queue empties or
// the active set reaches the current capacity.
func (s *Scheduler) admit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.queue.len() > 0 && len(s.active) < s.capacity {
		task, _ := s.queue.pop()
		sess, err := newSession(task, s.model, s.bctx, s.cfg)
		if err != nil {
			// Put the task back so the count stays conserved even though
			// the run is about to abort.
			s.queue.pushFront(task)
			return fmt.Errorf("admit task: %w", err)
		}
		s.active = append(s.active, sess)
		s.cfg.Sink.Publish(Event{Name: "admit", Question: task.Question, Fields: map[string]any{
			"active": len(s.active),
			"queued": s.queue.len(),
		}})
	}
	activeSessions.Set(float64(len(s.active)))
	queueDepth.Set(float64(s.queue.len()))
	return nil
}

// runRound invokes the shared decode step. Exhaustion is handled entirely
// here: shrink capacity to one below the active set (floor 1), evict the
// victim back to the queue, and retry the round without sampling. Any other
// error is fatal and propagates.
func (s *Scheduler) runRound() error {
	for {
		err := s.bctx.DecodeRound()
		if err == nil {
			decodeRoundsTotal.WithLabelValues("continue").Inc()
			return nil
		}
		if !backend.IsExhausted(err) {
			decodeRoundsTotal.WithLabelValues("fatal").Inc()
			return fmt.Errorf("decode round: %w", err)
		}
		decodeRoundsTotal.WithLabelValues("exhausted").Inc()
		if evictErr := s.evictOne(err); evictErr != nil {
			return evictErr
		}
	}
}

// evictOne handles a single exhaustion event: pick the victim, requeue its
// task at the back, and release its conversation.
func (s *Scheduler) evictOne(cause error) error {
	s.mu.Lock()
	if len(s.active) == 0 {
		// Nothing to shed; shrinking cannot help, so give up.
		s.mu.Unlock()
		return fmt.Errorf("backend exhausted with no active sessions: %w", cause)
	}
	s.capacity = len(s.active) - 1
	if s.capacity < 1 {
		s.capacity = 1
	}
	idx := s.cfg.Victim(s.active)
	victim := s.active[idx]
	s.queue.push(victim.task)
	s.active = append(s.active[:idx], s.active[idx+1:]...)
	capacity := s.capacity
	activeCount := len(s.active)
	queued := s.queue.len()
	s.mu.Unlock()

	_ = victim.Close()
	evictionsTotal.Inc()
	currentCapacity.Set(float64(capacity))
	activeSessions.Set(float64(activeCount))
	queueDepth.Set(float64(queued))
	s.cfg.Sink.Publish(Event{Name: "evict", Question: victim.task.Question, Fields: map[string]any{
		"capacity": capacity,
		"tokens":   victim.produced,
	}})
	return nil
}

// advance runs Sample then Prompt on every still-active session, moving each
// forward by exactly one generated token for this round.
func (s *Scheduler) advance(grammar *backend.Grammar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.active {
		if sess.finished {
			continue
		}
		if err := sess.sample(grammar); err != nil {
			return err
		}
		sess.prompt()
	}
	return nil
}

// drain extracts results from finished sessions, updates the confusion
// counters exactly once per task, releases each session, and compacts the
// active set in place.
func (s *Scheduler) drain() {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.active[:0]
	for _, sess := range s.active {
		if !sess.finished {
			kept = append(kept, sess)
			continue
		}
		expected, predicted := sess.result()
		s.conf.Update(expected, predicted)
		tasksResolvedTotal.WithLabelValues(outcomeLabel(expected, predicted)).Inc()
		_ = sess.Close()
		s.cfg.Sink.Publish(Event{Name: "resolve", Question: sess.task.Question, Fields: map[string]any{
			"expected":  expected,
			"predicted": predicted,
		}})
	}
	// clear the tail so released sessions are not retained
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = kept
	activeSessions.Set(float64(len(s.active)))
}

// closeAll disposes every open session. Used on fatal unwind and
// cancellation; Close is idempotent so overlapping paths are safe.
func (s *Scheduler) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.active {
		_ = sess.Close()
	}
	s.active = nil
	activeSessions.Set(0)
}
