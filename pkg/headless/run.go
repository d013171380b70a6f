package headless

import (
	"context"
	"fmt"

	"github.com/jihoonly/matzip/pkg/client"
)

// RunHeadless executes a single prompt against the streaming endpoint and
// prints the answer to stdout as it arrives. This is the main entry point for
// one-shot CLI execution.
func RunHeadless(backend *client.Client, prompt string, images []client.ImagePayload) error {
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty in headless mode")
	}

	runner := newRunner(backend)
	if err := runner.run(context.Background(), prompt, images); err != nil {
		return fmt.Errorf("failed to execute prompt: %w", err)
	}

	return nil
}

// RunBlocking executes a single prompt against the non-streaming endpoint and
// prints the complete answer once.
func RunBlocking(backend *client.Client, prompt string, images []client.ImagePayload) error {
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty in headless mode")
	}

	runner := newRunner(backend)
	if err := runner.runBlocking(context.Background(), prompt, images); err != nil {
		return fmt.Errorf("failed to execute prompt: %w", err)
	}

	return nil
}
