package headless

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jihoonly/matzip/pkg/chat"
)

// streamPrinter echoes the assistant's answer as it streams. The visible text
// is re-filtered on every delta, so a tag closing mid-stream can shrink it;
// the printer only ever emits text that extends what it already wrote.
type streamPrinter struct {
	w       io.Writer
	written string
}

func newStreamPrinter() *streamPrinter {
	return &streamPrinter{w: os.Stdout}
}

// Update prints whatever new filtered text has appeared since the last call.
// Text after an unclosed bracket is held back: it may be a marker tag that
// the filter will drop once its closing bracket arrives.
func (p *streamPrinter) Update(r *chat.Reducer) {
	content := streamingContent(r)
	content = strings.TrimRight(content[:printableBoundary(content)], " ")
	if strings.HasPrefix(content, p.written) {
		fmt.Fprint(p.w, content[len(p.written):])
		p.written = content
	}
}

func printableBoundary(s string) int {
	if i := strings.LastIndexByte(s, '['); i >= 0 && !strings.ContainsRune(s[i:], ']') {
		return i
	}
	return len(s)
}

// Flush prints the remainder of the final content and a trailing newline.
func (p *streamPrinter) Flush(final string) {
	if strings.HasPrefix(final, p.written) {
		fmt.Fprint(p.w, final[len(p.written):])
	} else {
		// The filtered final diverged from what streamed; reprint it whole.
		if p.written != "" {
			fmt.Fprintln(p.w)
		}
		fmt.Fprint(p.w, final)
	}
	fmt.Fprintln(p.w)
}

func streamingContent(r *chat.Reducer) string {
	for _, message := range r.Messages() {
		if message.IsStreaming() {
			return message.Content
		}
	}
	return ""
}
