package exchange

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/qmuntal/stateless"

	"github.com/aimentor/mentor-go/internal/chat"
	"github.com/aimentor/mentor-go/internal/llm"
	"github.com/aimentor/mentor-go/internal/logger"
)

// FSM states for one exchange (send / regenerate / summarize).
type FSMState stateless.State

var (
	StateReady              FSMState = "Ready"
	StateAwaitingCompletion FSMState = "AwaitingCompletion"
	StateRevealing          FSMState = "Revealing"
	StateDone               FSMState = "Done"  // Terminal: response delivered
	StateError              FSMState = "Error" // Terminal: completion failed
)

// FSM triggers.
type FSMTrigger stateless.Trigger

var (
	TriggerExchangeStarted   FSMTrigger = "ExchangeStarted"
	TriggerCompletionArrived FSMTrigger = "CompletionArrived"
	TriggerCompletionFailed  FSMTrigger = "CompletionFailed"
	TriggerDelivered         FSMTrigger = "Delivered"
)

// DefaultSummaryPrompt prefixes the transcript sent by Summarize.
const DefaultSummaryPrompt = "Summarize the following conversation in 5 concise bullets."

// Options configures exchange behavior. Tone and the typing-effect knobs map
// to the client-side settings panel.
type Options struct {
	Tone         string
	TypingEffect bool
	TypingStep   int           // runes revealed per tick
	TickInterval time.Duration // delay between reveal ticks
	FirstTick    time.Duration // delay before the first reveal tick
}

// Exchanger runs the optimistic-update protocol between sessions and the
// completion service. Pending state is tracked per session, so a slow
// completion in one tab never blocks another tab's send.
type Exchanger struct {
	registry *chat.Registry
	client   llm.Client

	mu      sync.Mutex
	opts    Options
	pending map[string]bool
}

// New creates an exchanger over the given registry and completion client.
func New(registry *chat.Registry, client llm.Client, opts Options) *Exchanger {
	if opts.TypingStep <= 0 {
		opts.TypingStep = 12
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = 25 * time.Millisecond
	}
	if opts.FirstTick <= 0 {
		opts.FirstTick = 10 * time.Millisecond
	}
	return &Exchanger{
		registry: registry,
		client:   client,
		opts:     opts,
		pending:  make(map[string]bool),
	}
}

// SetTone selects the tone directive for subsequent sends. "Default" (or
// empty) sends the raw text unchanged.
func (e *Exchanger) SetTone(tone string) {
	e.mu.Lock()
	e.opts.Tone = tone
	e.mu.Unlock()
}

// SetTypingEffect enables or disables the incremental reveal.
func (e *Exchanger) SetTypingEffect(on bool) {
	e.mu.Lock()
	e.opts.TypingEffect = on
	e.mu.Unlock()
}

// Pending reports whether the given session has an exchange in flight.
func (e *Exchanger) Pending(sessionID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending[sessionID]
}

func (e *Exchanger) setPending(sessionID string, v bool) {
	e.mu.Lock()
	if v {
		e.pending[sessionID] = true
	} else {
		delete(e.pending, sessionID)
	}
	e.mu.Unlock()
}

func (e *Exchanger) options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

func (e *Exchanger) withTone(text string) string {
	opts := e.options()
	if opts.Tone == "" || opts.Tone == "Default" {
		return text
	}
	return fmt.Sprintf("[Tone: %s] %s", opts.Tone, text)
}

// Send appends the user's turn to the session immediately, then requests a
// completion and delivers the assistant's reply. Blank input (after trimming)
// is a no-op, as is an unknown session id. The optimistic user message is
// never rolled back on failure.
func (e *Exchanger) Send(ctx context.Context, sessionID, input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	sess, ok := e.registry.Get(sessionID)
	if !ok {
		return nil
	}

	userMsg := chat.NewMessage(chat.RoleUser, input)
	sess.Append(userMsg)

	e.setPending(sessionID, true)
	defer e.setPending(sessionID, false)

	return e.run(ctx, sess, e.withTone(input), "")
}

// EditAndResend replaces the text of an existing user message and re-runs the
// completion. When the message immediately after the edited one is an
// assistant turn, its text is replaced in place; otherwise a new assistant
// message is appended. Editing an assistant message is rejected as a no-op.
func (e *Exchanger) EditAndResend(ctx context.Context, sessionID, messageID, newText string) error {
	sess, ok := e.registry.Get(sessionID)
	if !ok {
		return nil
	}
	msg, ok := sess.Find(messageID)
	if !ok || msg.Role != chat.RoleUser {
		return nil
	}

	sess.ReplaceText(messageID, newText)

	targetID := ""
	if next, ok := sess.At(sess.IndexOf(messageID) + 1); ok && next.Role == chat.RoleAssistant {
		targetID = next.ID
	}

	e.setPending(sessionID, true)
	defer e.setPending(sessionID, false)

	return e.run(ctx, sess, e.withTone(newText), targetID)
}

// Summarize sends the whole session transcript through the completion service
// and appends the result as a new assistant message. Empty sessions are a
// no-op.
func (e *Exchanger) Summarize(ctx context.Context, sessionID string) error {
	sess, ok := e.registry.Get(sessionID)
	if !ok {
		return nil
	}
	msgs := sess.Messages()
	if len(msgs) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(DefaultSummaryPrompt)
	b.WriteString("\n\n")
	for i, m := range msgs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", m.Role, m.Text)
	}

	e.setPending(sessionID, true)
	defer e.setPending(sessionID, false)

	return e.run(ctx, sess, b.String(), "")
}

// run drives one exchange through its state machine: await the completion,
// deliver the text (in place when targetID names an assistant message to
// regenerate, appended otherwise), then finish. The machine starts in Ready
// and an initial trigger enters AwaitingCompletion; OnEntry actions only run
// on transitions, so the first Fire is what sets the whole chain in motion.
func (e *Exchanger) run(ctx context.Context, sess *chat.Session, prompt, targetID string) error {
	type fsmContext struct {
		fullText string
		lastErr  error
	}
	fsmCtx := &fsmContext{}

	fsm := stateless.NewStateMachine(StateReady)

	fsm.Configure(StateReady).
		Permit(TriggerExchangeStarted, StateAwaitingCompletion)

	fsm.Configure(StateAwaitingCompletion).
		OnEntry(func(ctx context.Context, _ ...any) error {
			text, err := e.client.Complete(ctx, prompt)
			if err != nil {
				logger.L.Error("completion failed", "session", sess.ID, "error", err)
				fsmCtx.lastErr = err
				return fsm.FireCtx(ctx, TriggerCompletionFailed)
			}
			fsmCtx.fullText = text
			return fsm.FireCtx(ctx, TriggerCompletionArrived)
		}).
		Permit(TriggerCompletionArrived, StateRevealing).
		Permit(TriggerCompletionFailed, StateError)

	fsm.Configure(StateRevealing).
		OnEntry(func(ctx context.Context, _ ...any) error {
			e.deliver(sess, targetID, fsmCtx.fullText)
			return fsm.FireCtx(ctx, TriggerDelivered)
		}).
		Permit(TriggerDelivered, StateDone)

	fsm.Configure(StateDone)
	fsm.Configure(StateError)

	if err := fsm.FireCtx(ctx, TriggerExchangeStarted); err != nil {
		logger.L.Error("exchange FSM fire failed", "error", err)
		if fsmCtx.lastErr != nil {
			return fsmCtx.lastErr
		}
		return err
	}

	state, err := fsm.State(ctx)
	if err != nil {
		return fmt.Errorf("exchange FSM internal error: %w", err)
	}
	if state == StateError {
		return fsmCtx.lastErr
	}
	return nil
}

// deliver installs the response text into the session. With the typing effect
// off the full text lands at once; with it on, the message starts empty and a
// reveal advances it to the full text tick by tick.
func (e *Exchanger) deliver(sess *chat.Session, targetID, fullText string) {
	opts := e.options()

	msgID := targetID
	if msgID == "" {
		m := chat.NewMessage(chat.RoleAssistant, "")
		if !opts.TypingEffect {
			m.Text = fullText
		}
		sess.Append(m)
		msgID = m.ID
	} else if !opts.TypingEffect {
		sess.ReplaceText(msgID, fullText)
	} else {
		sess.ReplaceText(msgID, "")
	}

	if opts.TypingEffect {
		e.reveal(sess, msgID, fullText, opts)
	}
}

// reveal discloses fullText onto the message with the given id, advancing a
// rune prefix each tick. The reveal is not cancellable; it closes over its own
// message id, so concurrent reveals targeting different ids interleave safely.
func (e *Exchanger) reveal(sess *chat.Session, msgID, fullText string, opts Options) {
	go func() {
		runes := []rune(fullText)
		time.Sleep(opts.FirstTick)
		for i := opts.TypingStep; ; i += opts.TypingStep {
			if i > len(runes) {
				i = len(runes)
			}
			sess.ReplaceText(msgID, string(runes[:i]))
			if i >= len(runes) {
				return
			}
			time.Sleep(opts.TickInterval)
		}
	}()
}
