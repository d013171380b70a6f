package headless

import (
	"context"

	"github.com/jihoonly/matzip/pkg/chat"
	"github.com/jihoonly/matzip/pkg/client"
	"github.com/jihoonly/matzip/pkg/logger"
	"github.com/jihoonly/matzip/pkg/places"
)

// runner drives one turn without a terminal UI.
type runner struct {
	backend *client.Client
	reducer *chat.Reducer
	printer *streamPrinter
	output  *Output
}

func newRunner(backend *client.Client) *runner {
	return &runner{
		backend: backend,
		reducer: chat.NewReducer(),
		printer: newStreamPrinter(),
		output:  NewOutput(),
	}
}

// run sends the prompt with any attached images, prints the filtered answer
// as it streams, and finishes with the decoded places and any image links.
func (r *runner) run(ctx context.Context, prompt string, images []client.ImagePayload) error {
	logger.Debug("Headless prompt: %s (%d images)", prompt, len(images))

	r.reducer.Begin(chat.NewUserMessage(prompt, nil))

	ch, err := r.backend.Stream(ctx, prompt, images)
	if err != nil {
		r.reducer.Fail("")
		final := r.reducer.Finish()
		r.output.Error(final.Content)
		return err
	}

	for event := range ch {
		r.reducer.Apply(event)
		r.printer.Update(r.reducer)
	}

	final := r.reducer.Finish()
	r.printer.Flush(final.Content)

	if final.MapPayload != "" {
		r.output.Places(places.Parse(final.MapPayload))
	}
	for _, image := range final.Images {
		r.output.Image(image)
	}

	if sessionID, ok := r.backend.Session().ID(); ok {
		logger.Debug("Session: %s", sessionID)
	}
	return nil
}

// runBlocking sends the prompt over the non-streaming endpoint and prints the
// complete answer in one piece.
func (r *runner) runBlocking(ctx context.Context, prompt string, images []client.ImagePayload) error {
	logger.Debug("Headless prompt (blocking): %s (%d images)", prompt, len(images))

	resp, err := r.backend.Send(ctx, prompt, images)
	if err != nil {
		r.output.Error(err.Error())
		return err
	}

	r.printer.Flush(chat.FilterContent(resp.Response))

	if resp.MapURL != "" {
		r.output.Places(places.Parse(resp.MapURL))
	}
	for _, image := range resp.Images {
		r.output.Image(image)
	}

	return nil
}
