package tui

import "time"

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is the small animation shown while a turn is streaming.
type Spinner struct {
	Visible   bool
	Frame     int
	StartTime time.Time
}

func NewSpinner() Spinner {
	return Spinner{StartTime: time.Now()}
}

func (s Spinner) WithVisibility(visible bool) Spinner {
	// Reset animation when becoming visible
	if visible && !s.Visible {
		s.Frame = 0
		s.StartTime = time.Now()
	}
	s.Visible = visible
	return s
}

func (s Spinner) NextFrame() Spinner {
	if s.Visible {
		s.Frame = (s.Frame + 1) % len(spinnerFrames)
	}
	return s
}

func (s Spinner) Glyph() string {
	return spinnerFrames[s.Frame]
}
