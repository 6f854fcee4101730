package types

// StatusSnapshot is returned by GET /status. It is a read-only projection of
// the scheduler state and may be polled at any cadence.
type StatusSnapshot struct {
	// Tasks still waiting in the queue (including requeued evictees).
	// example: 12
	QueueDepth int `json:"queue_depth" example:"12"`
	// Sessions currently running against the shared context.
	// example: 4
	Active int `json:"active" example:"4"`
	// Tasks resolved with a correct prediction so far.
	// example: 30
	Correct int `json:"correct" example:"30"`
	// Tasks resolved with an incorrect prediction so far.
	// example: 5
	Incorrect int `json:"incorrect" example:"5"`
	// Backend context utilization in [0,1].
	// example: 0.62
	Utilization float64 `json:"utilization" example:"0.62"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: not found
	Error string `json:"error" example:"not found"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}
