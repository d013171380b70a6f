// Package stream turns a chunked byte stream into discrete protocol frames.
//
// The backend delivers one JSON event per "data: "-prefixed, newline-terminated
// line, but the transport is free to split or merge lines across reads. The
// Framer buffers raw bytes until a terminating newline has been observed, so a
// multi-byte character split across two reads is never misinterpreted.
package stream

import (
	"bytes"
	"context"
	"io"
	"strings"
)

// FramePrefix marks lines that carry a protocol event.
const FramePrefix = "data: "

// Framer reads an underlying byte stream and produces complete frames.
type Framer struct {
	body io.ReadCloser
	err  error
}

// NewFramer creates a framer over the given stream. The framer takes ownership
// of the reader and closes it when framing ends, regardless of how it ends.
func NewFramer(body io.ReadCloser) *Framer {
	return &Framer{body: body}
}

// Frames starts reading the stream and returns a channel of frame bodies, the
// text after the prefix with surrounding whitespace trimmed. Lines without the
// prefix and empty bodies are skipped. An unterminated remainder left at end of
// stream is discarded: the protocol guarantees terminated frames, so a partial
// line is transport noise.
//
// The channel is closed when the stream ends or ctx is cancelled. After it
// closes, Err reports any read error other than normal end of stream.
func (f *Framer) Frames(ctx context.Context) <-chan string {
	frames := make(chan string)

	go func() {
		defer close(frames)
		defer f.body.Close()

		var pending []byte
		buf := make([]byte, 4096)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			n, err := f.body.Read(buf)
			if n > 0 {
				pending = append(pending, buf[:n]...)

				for {
					i := bytes.IndexByte(pending, '\n')
					if i < 0 {
						break
					}
					line := string(pending[:i])
					pending = pending[i+1:]

					frame, ok := frameOf(line)
					if !ok {
						continue
					}

					select {
					case frames <- frame:
					case <-ctx.Done():
						return
					}
				}
			}

			if err != nil {
				if err != io.EOF {
					f.err = err
				}
				return
			}
		}
	}()

	return frames
}

// Err returns the read error that ended framing, if any. Only valid after the
// channel returned by Frames has been closed.
func (f *Framer) Err() error {
	return f.err
}

// frameOf extracts the frame body from a raw line. Lines lacking the prefix
// carry no event and are dropped without complaint.
func frameOf(line string) (string, bool) {
	line = strings.TrimSuffix(line, "\r")
	if !strings.HasPrefix(line, FramePrefix) {
		return "", false
	}

	body := strings.TrimSpace(line[len(FramePrefix):])
	if body == "" {
		return "", false
	}
	return body, true
}
