package scheduler

import (
	"fmt"
	"strings"

	"boolevald/internal/backend"
	"boolevald/pkg/types"
)

// session drives one task through templated prompting, iterative sampling,
// and completion detection. Lifecycle: created on admission, finished when
// the runtime emits an end-of-generation or newline token, closed exactly
// once on every exit path (drain, eviction, fatal unwind).
type session struct {
	task types.Task
	conv backend.Conversation
	bctx backend.Context

	// output accumulates fed-back tokens for later decoding to text.
	output []backend.Token
	// produced counts tokens so far, starting at the prompt's length.
	// The eviction policy keys off it.
	produced int
	pending  *backend.Token
	finished bool
	closed   bool
}

// newSession normalizes the task text, composes the prompt, and opens a
// conversation on the shared context. The conversation is released if any
// later step fails.
func newSession(task types.Task, model backend.Model, bctx backend.Context, cfg Config) (*session, error) {
	question := ensureSuffix(strings.TrimSpace(task.Question), "?")
	hint := strings.TrimSpace(task.Hint)
	if hint != "" {
		hint = ensureSuffix(hint, ".")
	}
	var user strings.Builder
	if hint != "" {
		user.WriteString(hint)
		user.WriteString(" ")
	}
	user.WriteString(question)
	user.WriteString(" ")
	user.WriteString(cfg.AnswerInstruction)

	tokens, err := model.TemplatePrompt(cfg.SystemPrompt, user.String())
	if err != nil {
		return nil, fmt.Errorf("template prompt: %w", err)
	}
	conv, err := bctx.NewConversation()
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	conv.Submit(tokens)
	return &session{
		task:     task,
		conv:     conv,
		bctx:     bctx,
		produced: len(tokens),
	}, nil
}

// sample draws one grammar-constrained token if the last round produced
// output for this session. End-of-generation and newline tokens finish the
// session and are discarded; anything else becomes the pending token.
func (s *session) sample(g *backend.Grammar) error {
	if s.finished || !s.conv.HasOutput() {
		return nil
	}
	tok, err := s.conv.Sample(g)
	if err != nil {
		return fmt.Errorf("sample: %w", err)
	}
	s.produced++
	if s.bctx.IsEndToken(tok) || strings.Contains(tok.Piece, "\n") {
		s.finished = true
		return nil
	}
	s.pending = &tok
	return nil
}

// prompt feeds the pending token back into the conversation as the next
// round's input and records it in the output buffer.
func (s *session) prompt() {
	if s.finished || s.pending == nil {
		return
	}
	s.output = append(s.output, *s.pending)
	s.conv.Submit([]backend.Token{*s.pending})
	s.pending = nil
}

// result decodes the buffered output and maps it to a boolean prediction.
// Valid only once the session is finished.
func (s *session) result() (expected, predicted bool) {
	text := s.bctx.TextOf(s.output)
	return s.task.Expected, backend.Classify(text)
}

// Close releases the conversation slot. Safe to call more than once; only
// the first call reaches the backend.
func (s *session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.conv == nil {
		return nil
	}
	return s.conv.Close()
}

func ensureSuffix(s, suffix string) string {
	if s == "" || strings.HasSuffix(s, suffix) {
		return s
	}
	return s + suffix
}
