package scheduler

import "boolevald/pkg/types"

// taskQueue is a FIFO of not-yet-started tasks. Evicted tasks are pushed to
// the back, so they retry strictly after everything queued before them.
type taskQueue struct {
	items []types.Task
}

func (q *taskQueue) push(t types.Task) {
	q.items = append(q.items, t)
}

// pushFront restores a task to the head of the queue. Used only when
// admission fails after the task was already dequeued, to keep the task
// count conserved.
func (q *taskQueue) pushFront(t types.Task) {
	q.items = append([]types.Task{t}, q.items...)
}

func (q *taskQueue) pop() (types.Task, bool) {
	if len(q.items) == 0 {
		return types.Task{}, false
	}
	t := q.items[0]
	q.items = q.items[1:]
	return t, true
}

func (q *taskQueue) len() int { return len(q.items) }
