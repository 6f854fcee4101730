package scheduler

import "github.com/rs/zerolog"

// Event represents a scheduler lifecycle event.
// Minimal and stable: name + question and optional fields via key/values.
type Event struct {
	Name     string
	Question string
	Fields   map[string]any
}

// Sink receives events from the scheduler. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type Sink interface {
	Publish(Event)
}

// noopSink is the default; it drops events.
type noopSink struct{}

func (noopSink) Publish(Event) {}

// LogSink forwards events to a zerolog logger at debug level.
type LogSink struct {
	Logger zerolog.Logger
}

func (s LogSink) Publish(e Event) {
	ev := s.Logger.Debug().Str("event", e.Name)
	if e.Question != "" {
		ev = ev.Str("question", e.Question)
	}
	if len(e.Fields) > 0 {
		ev = ev.Fields(e.Fields)
	}
	ev.Msg("scheduler")
}
