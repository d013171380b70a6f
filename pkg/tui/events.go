package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/jihoonly/matzip/pkg/chat"
)

// Custom event types posted from the streaming goroutine into the screen's
// event loop, so all state reads and rendering stay on one goroutine.

// StreamProgressEvent is posted after each applied stream event.
type StreamProgressEvent struct {
	tcell.EventTime
}

// TurnFinishedEvent is posted once per turn with the finalized message.
type TurnFinishedEvent struct {
	tcell.EventTime
	Final chat.Message
}

// ToolsExpiredEvent is posted when the tools-used display grace period ends.
type ToolsExpiredEvent struct {
	tcell.EventTime
}

// SpinnerTickEvent drives the streaming animation.
type SpinnerTickEvent struct {
	tcell.EventTime
}

func NewStreamProgressEvent() *StreamProgressEvent {
	e := &StreamProgressEvent{}
	e.SetEventNow()
	return e
}

func NewTurnFinishedEvent(final chat.Message) *TurnFinishedEvent {
	e := &TurnFinishedEvent{Final: final}
	e.SetEventNow()
	return e
}

func NewToolsExpiredEvent() *ToolsExpiredEvent {
	e := &ToolsExpiredEvent{}
	e.SetEventNow()
	return e
}

func NewSpinnerTickEvent() *SpinnerTickEvent {
	e := &SpinnerTickEvent{}
	e.SetEventNow()
	return e
}
