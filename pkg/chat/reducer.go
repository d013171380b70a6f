package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/jihoonly/matzip/pkg/events"
	"github.com/jihoonly/matzip/pkg/logger"
)

// State tracks where the current turn is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateStreaming
	StateFinalized
	StateFailed
)

// Reducer folds the event sequence of a turn into the ordered message list and
// the transient status signals the UI renders next to it.
//
// Events are applied strictly in arrival order by a single consumer; the mutex
// only covers the UI reading state while a turn is in flight and the deferred
// tools-used expiry firing from a timer.
type Reducer struct {
	mu sync.Mutex

	messages []Message
	state    State

	buffer    strings.Builder
	activity  string
	toolsUsed []string

	mapPayload string
	images     []string
	restaurant *Restaurant

	notification    string
	hasNotification bool
}

// NewReducer returns a reducer seeded with the welcome greeting.
func NewReducer() *Reducer {
	return &Reducer{
		messages: []Message{NewWelcomeMessage()},
		state:    StateIdle,
	}
}

// Messages returns a snapshot of the conversation in display order.
func (r *Reducer) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]Message, len(r.messages))
	copy(result, r.messages)
	return result
}

// State returns the current turn state.
func (r *Reducer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Streaming reports whether a turn is currently in flight.
func (r *Reducer) Streaming() bool {
	return r.State() == StateStreaming
}

// Activity returns the current fine-grained status label, empty when idle.
func (r *Reducer) Activity() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activity
}

// ToolsUsed returns the ordered list of tool labels used this turn. The list
// survives turn completion for a short display grace period; the owner of the
// grace timer calls ExpireTools.
func (r *Reducer) ToolsUsed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]string, len(r.toolsUsed))
	copy(result, r.toolsUsed)
	return result
}

// Notification returns the pending user-visible failure notice, if any.
func (r *Reducer) Notification() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notification, r.hasNotification
}

// ClearNotification acknowledges the pending notice.
func (r *Reducer) ClearNotification() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notification = ""
	r.hasNotification = false
}

// Begin starts a new turn: the user message is appended and all per-turn state
// is reset.
func (r *Reducer) Begin(userMessage Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, userMessage)
	r.state = StateStreaming
	r.notification = ""
	r.hasNotification = false
	r.buffer.Reset()
	r.activity = ""
	r.toolsUsed = nil
	r.mapPayload = ""
	r.images = nil
	r.restaurant = nil
}

// Apply folds one stream event into the turn.
func (r *Reducer) Apply(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch event.Type {
	case events.TypeSession:
		// Session correlation is handled by the decoder.

	case events.TypeTool:
		switch event.Status {
		case events.StatusStart:
			name := ToolDisplayName(event.Tool)
			r.toolsUsed = append(r.toolsUsed, name)
			r.activity = name + "..."
		case events.StatusDone:
			r.activity = ""
		}

	case events.TypeToolProgress:
		// Finer-grained than the start/done label; last writer wins.
		if event.Status != "" {
			r.activity = event.Status
		}

	case events.TypeText:
		// A failed turn is terminal; late text cannot resurrect it.
		if r.state == StateFailed || event.Content == "" {
			return
		}
		r.buffer.WriteString(event.Content)
		r.upsertStreamingMessage(FilterContent(r.buffer.String()))

	case events.TypeDone:
		if r.state == StateFailed {
			return
		}
		r.mapPayload = event.MapURL
		r.images = event.Images
		if event.Restaurant != nil {
			r.restaurant = &Restaurant{
				Name:        event.Restaurant.Name,
				Cuisine:     event.Restaurant.Cuisine,
				Rating:      event.Restaurant.Rating,
				Address:     event.Restaurant.Address,
				Phone:       event.Restaurant.Phone,
				Description: event.Restaurant.Description,
				ImageURL:    event.Restaurant.ImageURL,
			}
		}
		r.activity = ""
		r.state = StateFinalized

	case events.TypeError:
		r.failLocked(event.Message)

	default:
		logger.Debug("Ignoring unknown event type: %s", event.Type)
	}
}

// Fail routes a transport-level failure through the same path as a protocol
// error event. Either way the turn ends with one notification and one terminal
// assistant message.
func (r *Reducer) Fail(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failLocked(message)
}

func (r *Reducer) failLocked(message string) {
	if message == "" {
		message = "Something went wrong"
	}
	r.state = StateFailed
	r.notification = message
	r.hasNotification = true
}

// Finish completes the turn: the in-progress placeholder is removed and a
// finalized message with a fresh id is appended. On the failed path the
// partially accumulated text is discarded in favor of the apology text. The
// tools-used list is deliberately left alone; it expires on its own schedule.
func (r *Reducer) Finish() Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeStreamingMessage()
	r.activity = ""

	var final Message
	if r.state == StateFailed {
		final = NewAssistantMessage(apologyText)
	} else {
		final = NewAssistantMessage(FilterContent(r.buffer.String()))
		final.MapPayload = r.mapPayload
		final.Images = r.images
		final.Restaurant = r.restaurant
	}

	r.messages = append(r.messages, final)
	r.buffer.Reset()
	r.state = StateIdle

	return final
}

// ExpireTools clears the tools-used list once its display grace period ends.
func (r *Reducer) ExpireTools() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toolsUsed = nil
}

// Reset clears the conversation back to a fresh greeting. It does not cancel
// an in-flight stream; a stale turn's late events may still be applied after
// the reset, which matches the source behavior (see DESIGN.md).
func (r *Reducer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = []Message{NewRestartMessage()}
	r.state = StateIdle
	r.buffer.Reset()
	r.activity = ""
	r.toolsUsed = nil
	r.mapPayload = ""
	r.images = nil
	r.restaurant = nil
	r.notification = ""
	r.hasNotification = false
}

// upsertStreamingMessage replaces the placeholder in place if present,
// otherwise appends it. Position is preserved across updates.
func (r *Reducer) upsertStreamingMessage(content string) {
	for i := range r.messages {
		if r.messages[i].ID == StreamingMessageID {
			r.messages[i].Content = content
			return
		}
	}

	r.messages = append(r.messages, Message{
		ID:        StreamingMessageID,
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	})
}

func (r *Reducer) removeStreamingMessage() {
	for i := range r.messages {
		if r.messages[i].ID == StreamingMessageID {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return
		}
	}
}
