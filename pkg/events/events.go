// Package events defines the typed stream protocol spoken by the backend and
// the decoder that turns raw frames into events.
package events

import "encoding/json"

// Event types carried by the stream protocol. Exactly one applies per event.
const (
	TypeSession      = "session"
	TypeTool         = "tool"
	TypeToolProgress = "tool_progress"
	TypeText         = "text"
	TypeDone         = "done"
	TypeError        = "error"
)

// Tool status values for TypeTool events.
const (
	StatusStart = "start"
	StatusDone  = "done"
)

// Event is one decoded stream event. Fields other than Type are populated
// depending on the variant; absent optional fields mean "no update".
type Event struct {
	Type       string      `json:"type"`
	SessionID  string      `json:"session_id,omitempty"`
	Tool       string      `json:"tool,omitempty"`
	Status     string      `json:"status,omitempty"`
	Content    string      `json:"content,omitempty"`
	MapURL     string      `json:"map_url,omitempty"`
	Images     []string    `json:"images,omitempty"`
	Restaurant *Restaurant `json:"restaurant,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// Restaurant is the structured summary a done event may attach to the answer.
type Restaurant struct {
	Name        string  `json:"name"`
	Cuisine     string  `json:"cuisine"`
	Rating      float64 `json:"rating,omitempty"`
	Address     string  `json:"address,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// Decode parses a single frame body into an event. A frame that is not a JSON
// event object is transport noise, not an error: keep-alives and fragments are
// expected, so failure is reported as ok=false and the frame is dropped.
func Decode(frame string) (Event, bool) {
	var event Event
	if err := json.Unmarshal([]byte(frame), &event); err != nil {
		return Event{}, false
	}
	if event.Type == "" {
		return Event{}, false
	}
	return event, true
}

// Decoder decodes frames in arrival order and keeps the conversation session
// correlated: a session event updates the attached session before the event is
// passed through. That is the only variant with a side effect at this layer.
type Decoder struct {
	session *Session
}

// NewDecoder creates a decoder bound to the given session.
func NewDecoder(session *Session) *Decoder {
	return &Decoder{session: session}
}

// Decode parses a frame and applies the session side effect if applicable.
func (d *Decoder) Decode(frame string) (Event, bool) {
	event, ok := Decode(frame)
	if !ok {
		return Event{}, false
	}

	if event.Type == TypeSession && event.SessionID != "" && d.session != nil {
		d.session.Set(event.SessionID)
	}

	return event, true
}
