package stream_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jihoonly/matzip/pkg/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkedReader delivers a fixed payload in caller-chosen chunk sizes, one
// chunk per Read call, to simulate arbitrary network fragmentation.
type chunkedReader struct {
	chunks [][]byte
	pos    int
	closed bool
	errAt  int // inject a read error after this many chunks; -1 disables
}

func newChunkedReader(payload string, sizes ...int) *chunkedReader {
	r := &chunkedReader{errAt: -1}
	data := []byte(payload)
	for _, size := range sizes {
		if size > len(data) {
			size = len(data)
		}
		r.chunks = append(r.chunks, data[:size])
		data = data[size:]
	}
	if len(data) > 0 {
		r.chunks = append(r.chunks, data)
	}
	return r
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.errAt >= 0 && r.pos >= r.errAt {
		return 0, errors.New("connection reset")
	}
	if r.pos >= len(r.chunks) {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[r.pos])
	r.pos++
	return n, nil
}

func (r *chunkedReader) Close() error {
	r.closed = true
	return nil
}

func collect(t *testing.T, f *stream.Framer) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var frames []string
	for frame := range f.Frames(ctx) {
		frames = append(frames, frame)
	}
	return frames
}

func TestFramerSingleChunk(t *testing.T) {
	r := newChunkedReader("data: one\ndata: two\n")
	f := stream.NewFramer(r)

	frames := collect(t, f)

	require.Equal(t, []string{"one", "two"}, frames)
	require.NoError(t, f.Err())
	assert.True(t, r.closed, "reader must be closed after framing")
}

func TestFramerChunkBoundaryInvariance(t *testing.T) {
	payload := "data: hello\ndata: world\nignored line\ndata: done\n"
	want := []string{"hello", "world", "done"}

	// The frame sequence must not depend on where the transport splits the
	// payload, including splits inside the prefix and inside a frame body.
	for size := 1; size <= len(payload); size++ {
		var sizes []int
		for covered := 0; covered < len(payload); covered += size {
			sizes = append(sizes, size)
		}

		r := newChunkedReader(payload, sizes...)
		frames := collect(t, stream.NewFramer(r))

		require.Equalf(t, want, frames, "chunk size %d changed the frame sequence", size)
		assert.True(t, r.closed)
	}
}

func TestFramerMultiByteSplitAcrossChunks(t *testing.T) {
	// "김치" is 6 bytes of UTF-8; split the payload mid-rune.
	payload := "data: 김치\n"
	r := newChunkedReader(payload, 8)

	frames := collect(t, stream.NewFramer(r))

	require.Equal(t, []string{"김치"}, frames)
}

func TestFramerSkipsLinesWithoutPrefix(t *testing.T) {
	r := newChunkedReader(": keep-alive\n\ndata: real\nnoise\n")

	frames := collect(t, stream.NewFramer(r))

	require.Equal(t, []string{"real"}, frames)
}

func TestFramerDiscardsUnterminatedRemainder(t *testing.T) {
	r := newChunkedReader("data: complete\ndata: partial")

	frames := collect(t, stream.NewFramer(r))

	require.Equal(t, []string{"complete"}, frames)
}

func TestFramerSkipsEmptyFrameBodies(t *testing.T) {
	r := newChunkedReader("data: \ndata:    \ndata: x\n")

	frames := collect(t, stream.NewFramer(r))

	require.Equal(t, []string{"x"}, frames)
}

func TestFramerTrimsCarriageReturns(t *testing.T) {
	r := newChunkedReader("data: crlf\r\n")

	frames := collect(t, stream.NewFramer(r))

	require.Equal(t, []string{"crlf"}, frames)
}

func TestFramerReportsReadError(t *testing.T) {
	r := newChunkedReader("data: first\ndata: second\n", 12)
	r.errAt = 1 // fail after the first chunk

	f := stream.NewFramer(r)
	frames := collect(t, f)

	require.Equal(t, []string{"first"}, frames)
	require.Error(t, f.Err())
	assert.True(t, r.closed, "reader must be closed on error paths too")
}

func TestFramerClosesReaderOnCancel(t *testing.T) {
	r := newChunkedReader("data: a\ndata: b\ndata: c\n", 8, 8, 8)
	f := stream.NewFramer(r)

	ctx, cancel := context.WithCancel(context.Background())
	frames := f.Frames(ctx)

	<-frames
	cancel()

	// Drain until close so the goroutine finishes its cleanup.
	for range frames {
	}

	assert.Eventually(t, func() bool { return r.closed }, time.Second, 10*time.Millisecond)
}
