// Package client speaks to the remote food-assistant backend: a one-shot JSON
// endpoint and a streaming endpoint delivering incremental events over a
// long-lived chunked response.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jihoonly/matzip/pkg/events"
	"github.com/jihoonly/matzip/pkg/logger"
	"github.com/jihoonly/matzip/pkg/stream"
)

// Client is an HTTP client for the assistant backend. The session it carries
// correlates successive turns into one backend conversation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *events.Session
}

// ChatRequest is the outbound request body for both endpoints.
type ChatRequest struct {
	Message   string         `json:"message"`
	SessionID *string        `json:"session_id"`
	Images    []ImagePayload `json:"images,omitempty"`
}

// ChatResponse is the body of a non-streaming chat response.
type ChatResponse struct {
	Response  string   `json:"response"`
	SessionID string   `json:"session_id"`
	MapURL    string   `json:"map_url,omitempty"`
	Images    []string `json:"images,omitempty"`
}

// NewClient creates a client with the default timeout.
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, 120*time.Second)
}

// NewClientWithTimeout creates a client with a custom request timeout. The
// timeout bounds the non-streaming endpoint only; streaming responses stay
// open until the backend closes them.
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		session: events.NewSession(),
	}
}

// Session exposes the conversation session the client maintains.
func (c *Client) Session() *events.Session {
	return c.session
}

// ClearSession forgets the conversation token so the next request starts a new
// backend conversation. In-flight streams are not cancelled.
func (c *Client) ClearSession() {
	c.session.Clear()
}

// Send performs a non-streaming chat request and updates the session from the
// trailing response field.
func (c *Client) Send(ctx context.Context, message string, images []ImagePayload) (*ChatResponse, error) {
	reqBody, err := json.Marshal(c.newRequest(message, images))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if chatResp.SessionID != "" {
		c.session.Set(chatResp.SessionID)
	}

	return &chatResp, nil
}

// Stream performs a streaming chat request. Decoded events are delivered in
// arrival order on the returned channel, which closes when the stream ends.
//
// A mid-stream transport failure is delivered as a trailing error-typed event
// so the consumer routes it through the same failure path as a protocol error.
// Frames that fail to decode are dropped silently; they are expected noise.
func (c *Client) Stream(ctx context.Context, message string, images []ImagePayload) (<-chan events.Event, error) {
	reqBody, err := json.Marshal(c.newRequest(message, images))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/stream", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// No client-side timeout here: the response stays open for the whole turn.
	streamClient := &http.Client{Transport: c.httpClient.Transport}
	resp, err := streamClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := statusError(resp)
		resp.Body.Close()
		return nil, err
	}

	out := make(chan events.Event, 100) // Buffered for performance
	framer := stream.NewFramer(resp.Body)
	decoder := events.NewDecoder(c.session)

	go func() {
		defer close(out)

		for frame := range framer.Frames(ctx) {
			event, ok := decoder.Decode(frame)
			if !ok {
				logger.Debug("Dropping undecodable frame: %q", frame)
				continue
			}

			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}

		if err := framer.Err(); err != nil {
			logger.Error("Stream read failed: %v", err)
			select {
			case out <- events.Event{Type: events.TypeError}:
			case <-ctx.Done():
			}
		}
	}()

	return out, nil
}

func (c *Client) newRequest(message string, images []ImagePayload) ChatRequest {
	req := ChatRequest{Message: message, Images: images}
	if id, ok := c.session.ID(); ok {
		req.SessionID = &id
	}
	return req
}

// statusError reads the error body of a non-200 response for detail, falling
// back to the raw body when it is not the JSON error shape.
func statusError(resp *http.Response) error {
	errorBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("request failed with status %d (failed to read error response: %w)", resp.StatusCode, err)
	}

	var errorResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(errorBody, &errorResp) == nil && errorResp.Error != "" {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, errorResp.Error)
	}

	return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(errorBody))
}
