package types

// Task is one boolean classification question loaded from the dataset.
// Tasks are immutable after load: a task sits in the scheduler queue, is
// embedded in exactly one running session, or has been resolved into the
// final report — never more than one of those at a time.
type Task struct {
	Question string `json:"question"`
	Expected bool   `json:"expected"`
	Hint     string `json:"hint,omitempty"`
}

// Report is the final outcome of an evaluation run.
type Report struct {
	TruePositive  int     `json:"true_positive"`
	TrueNegative  int     `json:"true_negative"`
	FalsePositive int     `json:"false_positive"`
	FalseNegative int     `json:"false_negative"`
	Total         int     `json:"total"`
	Accuracy      float64 `json:"accuracy"`
}
