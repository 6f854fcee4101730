package scheduler

import (
	"errors"
	"strings"

	"boolevald/internal/backend"
)

const fakeEOG = -9

// fakeBackend implements backend.Model and backend.Context with scripted
// behavior: per-prompt answers, exhaustion at chosen decode calls, and
// fatal-error injection. Each conversation emits its answer token on its
// first productive round and a newline terminator on the next.
type fakeBackend struct {
	answerFor    func(prompt string) string
	exhaustAt    map[int]bool
	fatalAt      int
	failConvAt   int // NewConversation fails once this many convs exist (0 = never)
	decodeCalls  int
	convs        []*fakeConv
	lastSystem   string
	lastUser     string
	utilization  float64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		answerFor:   func(string) string { return "yes" },
		exhaustAt:   map[int]bool{},
		utilization: 0.25,
	}
}

// answerByQuestion routes answers by substring match on the prompt.
func answerByQuestion(m map[string]string, fallback string) func(string) string {
	return func(prompt string) string {
		for q, a := range m {
			if strings.Contains(prompt, q) {
				return a
			}
		}
		return fallback
	}
}

// backend.Model

func (f *fakeBackend) TemplatePrompt(system, user string) ([]backend.Token, error) {
	f.lastSystem = system
	f.lastUser = user
	return []backend.Token{{ID: -1, Piece: system + "\n" + user + "\n"}}, nil
}

// backend.Context

func (f *fakeBackend) NewConversation() (backend.Conversation, error) {
	if f.failConvAt > 0 && len(f.convs) >= f.failConvAt {
		return nil, errors.New("injected conversation failure")
	}
	cv := &fakeConv{f: f}
	f.convs = append(f.convs, cv)
	return cv, nil
}

func (f *fakeBackend) Tokenize(text string) ([]backend.Token, error) {
	return []backend.Token{{ID: -1, Piece: text}}, nil
}

func (f *fakeBackend) DecodeRound() error {
	f.decodeCalls++
	if f.fatalAt != 0 && f.decodeCalls >= f.fatalAt {
		return errors.New("decode failed")
	}
	if f.exhaustAt[f.decodeCalls] {
		return backend.ErrExhausted("no free slots")
	}
	for _, cv := range f.convs {
		if cv.closed > 0 || cv.done || !cv.pendingInput {
			continue
		}
		cv.pendingInput = false
		if cv.pos < len(cv.script) {
			tok := cv.script[cv.pos]
			cv.pos++
			cv.have = &tok
			continue
		}
		tok := backend.Token{ID: fakeEOG}
		cv.have = &tok
		cv.done = true
	}
	return nil
}

func (f *fakeBackend) TextOf(tokens []backend.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.ID == fakeEOG {
			continue
		}
		b.WriteString(t.Piece)
	}
	return b.String()
}

func (f *fakeBackend) IsEndToken(tok backend.Token) bool { return tok.ID == fakeEOG }

func (f *fakeBackend) Utilization() float64 { return f.utilization }

func (f *fakeBackend) Close() error { return nil }

// leakedConvs returns conversations never closed or closed more than once.
func (f *fakeBackend) leakedConvs() int {
	n := 0
	for _, cv := range f.convs {
		if cv.closed != 1 {
			n++
		}
	}
	return n
}

type fakeConv struct {
	f            *fakeBackend
	script       []backend.Token
	pos          int
	pendingInput bool
	have         *backend.Token
	done         bool
	closed       int
}

func (cv *fakeConv) Submit(tokens []backend.Token) {
	if cv.script == nil {
		var b strings.Builder
		for _, t := range tokens {
			b.WriteString(t.Piece)
		}
		cv.script = []backend.Token{
			{ID: 1, Piece: cv.f.answerFor(b.String())},
			{ID: 2, Piece: "\n"},
		}
	}
	cv.pendingInput = true
}

func (cv *fakeConv) HasOutput() bool { return cv.have != nil }

func (cv *fakeConv) Sample(g *backend.Grammar) (backend.Token, error) {
	if cv.have == nil {
		return backend.Token{}, errors.New("no pending output")
	}
	tok := *cv.have
	cv.have = nil
	return tok, nil
}

func (cv *fakeConv) Close() error {
	cv.closed++
	return nil
}
