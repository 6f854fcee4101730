// Package backend defines the capability surface the evaluator consumes from
// an inference runtime: one loaded model, one shared decode context, and any
// number of conversations multiplexed onto it. Concrete runtimes (in-process
// llama.cpp, test fakes) satisfy these interfaces.
package backend

// Token is one vocabulary piece flowing through a conversation. ID is the
// runtime's vocabulary id when known; runtimes that only expose streamed
// text set ID to -1 and carry the decoded piece.
type Token struct {
	ID    int
	Piece string
}

// Config holds runtime parameters for opening a model and its shared context.
type Config struct {
	ModelPath string
	// Capacity is a hint for how many conversations will decode in parallel.
	Capacity int
	CtxSize  int
	Threads  int
}

// Model is a loaded model. It owns prompt templating because the chat
// template ships with the model file.
type Model interface {
	// TemplatePrompt renders a system + user turn into the token sequence
	// that opens a conversation.
	TemplatePrompt(system, user string) ([]Token, error)
}

// Context is the shared decode context all conversations run on. Only one
// goroutine may drive DecodeRound; read-only methods are safe concurrently.
type Context interface {
	NewConversation() (Conversation, error)
	Tokenize(text string) ([]Token, error)
	// DecodeRound advances every conversation with pending input by one
	// step. A nil return means progress was made; an exhaustion error
	// (IsExhausted) means the active set no longer fits and must shrink;
	// any other error is fatal for the run.
	DecodeRound() error
	// TextOf decodes a token sequence back to text.
	TextOf(tokens []Token) string
	// IsEndToken reports whether tok marks end of generation.
	IsEndToken(tok Token) bool
	// Utilization reports how full the shared context is, in [0,1].
	Utilization() float64
	Close() error
}

// Conversation is one sequence position stream within the shared context.
type Conversation interface {
	// Submit queues tokens as this conversation's input for the next round.
	Submit(tokens []Token)
	// HasOutput reports whether the last round produced a sampleable
	// position for this conversation.
	HasOutput() bool
	// Sample draws the next token under the given grammar constraint.
	// Valid only when HasOutput is true.
	Sample(g *Grammar) (Token, error)
	// Close releases the conversation's slot. Idempotent.
	Close() error
}
