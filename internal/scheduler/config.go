package scheduler

// Defaults applied when corresponding Config fields are unset.
const (
	defaultSystemPrompt      = "You are a careful assistant. Decide whether the statement implied by the question is true or false."
	defaultAnswerInstruction = "Answer with a single word: true or false."
)

// VictimPolicy selects which active session to evict when the shared
// context runs out of room. It receives the active set and returns the
// index of the victim. The slice must not be mutated.
type VictimPolicy func(active []*session) int

// mostTokensVictim evicts the session with the greatest tokens-produced
// count (prompt included): sacrifice the most expensive occupant to free
// the most room. This is the default and the long-standing behavior;
// install a different policy via Config.Victim to change it.
func mostTokensVictim(active []*session) int {
	idx := 0
	for i, s := range active {
		if s.produced > active[idx].produced {
			idx = i
		}
	}
	return idx
}

// Config encapsulates all tunables for Scheduler construction.
type Config struct {
	// Capacity is the requested number of parallel sessions. The effective
	// capacity starts here and only shrinks (floor 1) under exhaustion.
	Capacity int
	// SystemPrompt and AnswerInstruction compose each session's prompt.
	SystemPrompt      string
	AnswerInstruction string
	// Sink receives lifecycle events; nil means drop them.
	Sink Sink
	// Victim overrides the eviction policy; nil means mostTokensVictim.
	Victim VictimPolicy
}

func (cfg Config) withDefaults() Config {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaultSystemPrompt
	}
	if cfg.AnswerInstruction == "" {
		cfg.AnswerInstruction = defaultAnswerInstruction
	}
	if cfg.Sink == nil {
		cfg.Sink = noopSink{}
	}
	if cfg.Victim == nil {
		cfg.Victim = mostTokensVictim
	}
	return cfg
}
