package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/jihoonly/matzip/pkg/chat"
)

// drawText draws a single line, truncated to maxWidth screen cells.
func drawText(screen tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		if col-x >= maxWidth {
			return
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}

func drawLine(screen tcell.Screen, x, y, maxWidth int, line StyledLine) {
	col := x + line.Indent
	for _, span := range line.Spans {
		for _, r := range span.Text {
			if col-x >= maxWidth {
				return
			}
			screen.SetContent(col, y, r, nil, span.Style)
			col++
		}
	}
}

// render draws the whole application: message history on top, then the map
// panel of the latest located answer, the tools-used chips, the status line,
// and the input prompt at the bottom.
func (a *App) render() {
	a.screen.Fill(' ', StyleDefault)
	width, height := a.screen.Size()
	if width < 10 || height < 6 {
		a.screen.Show()
		return
	}

	inputRow := height - 1
	statusRow := height - 2

	chipsRow := -1
	tools := a.reducer.ToolsUsed()
	if len(tools) > 0 {
		chipsRow = statusRow - 1
	}

	panelTop := statusRow
	if chipsRow >= 0 {
		panelTop = chipsRow
	}
	panelHeight := a.activePanel.Height()
	if panelHeight > 0 {
		panelTop -= panelHeight + 1
		a.activePanel.Draw(a.screen, 1, panelTop+1, width-2)
	}

	a.renderMessages(1, 0, width-2, panelTop)
	a.renderChips(chipsRow, width, tools)
	a.renderStatus(statusRow, width)
	a.renderInput(inputRow, width)

	a.screen.Show()
}

func (a *App) renderMessages(x, top, width, bottom int) {
	lines := a.buildMessageLines(width)

	visible := bottom - top
	if visible <= 0 {
		return
	}

	// Bottom-anchored: the newest lines are in view unless scrolled back.
	start := len(lines) - visible - a.scrollOffset
	if start < 0 {
		start = 0
	}

	row := top
	for i := start; i < len(lines) && row < bottom; i++ {
		drawLine(a.screen, x, row, width, lines[i])
		row++
	}
}

// buildMessageLines lays out the whole conversation as styled lines.
func (a *App) buildMessageLines(width int) []StyledLine {
	var lines []StyledLine

	for _, message := range a.reducer.Messages() {
		style := StyleAssistantText
		label := "Assistant"
		if message.IsUser() {
			style = StyleUserText
			label = "You"
		}

		if len(lines) > 0 {
			lines = append(lines, StyledLine{})
		}
		lines = append(lines, StyledLine{Spans: []Span{{Text: label, Style: style.Bold(true).Underline(true)}}})

		formatter := NewMessageFormatter(width, style)
		lines = append(lines, formatter.Format(message.Content)...)

		for _, image := range message.Images {
			lines = append(lines, StyledLine{
				Spans:  []Span{{Text: "🖼  " + image, Style: StyleDimText}},
				Indent: 2,
			})
		}

		if message.Restaurant != nil {
			lines = append(lines, restaurantCardLines(*message.Restaurant, width)...)
		}

		if message.IsStreaming() {
			// Streaming cursor on the in-progress message.
			if n := len(lines); n > 0 {
				lines[n-1].Spans = append(lines[n-1].Spans, Span{Text: " ▌", Style: StyleDimText})
			}
		}
	}

	return lines
}

// restaurantCardLines renders the structured restaurant summary as a compact
// card under its message.
func restaurantCardLines(r chat.Restaurant, width int) []StyledLine {
	var lines []StyledLine
	add := func(text string, style tcell.Style) {
		lines = append(lines, StyledLine{Spans: []Span{{Text: text, Style: style}}, Indent: 2})
	}

	add("┌ "+r.Name, StylePlaceName)
	meta := "│ " + r.Cuisine
	if r.Rating > 0 {
		meta += fmt.Sprintf("  ★ %.1f", r.Rating)
	}
	add(meta, StylePlaceDetail)
	if r.Description != "" {
		formatter := NewMessageFormatter(width-4, StyleDimText)
		for _, line := range formatter.Format(r.Description) {
			line.Indent += 2
			lines = append(lines, line)
		}
	}
	if r.Address != "" {
		add("│ 📍 "+r.Address, StylePlaceDetail)
	}
	if r.Phone != "" {
		add("└ 📞 "+r.Phone, StylePlaceDetail)
	} else {
		add("└", StylePlaceDetail)
	}

	return lines
}

func (a *App) renderChips(row, width int, tools []string) {
	if row < 0 {
		return
	}

	col := 1
	drawText(a.screen, col, row, width, StyleDimText, "Tools:")
	col += 7
	for i, tool := range tools {
		chip := fmt.Sprintf("[%d. %s] ", i+1, tool)
		drawText(a.screen, col, row, width-col, StyleToolChip, chip)
		col += len([]rune(chip))
	}
}

func (a *App) renderStatus(row, width int) {
	if notice, ok := a.reducer.Notification(); ok {
		drawText(a.screen, 1, row, width-2, StyleNotification, "⚠ "+notice)
		return
	}

	if a.reducer.Streaming() {
		activity := a.reducer.Activity()
		if activity == "" {
			activity = "Thinking"
		}
		drawText(a.screen, 1, row, width-2, StyleStatusBusy, a.spinner.Glyph()+" "+activity)
		return
	}

	hint := "Enter send · Ctrl+N new conversation · Alt+1..9 select marker · Esc deselect · Ctrl+C quit"
	drawText(a.screen, 1, row, width-2, StyleDimText, hint)
}

func (a *App) renderInput(row, width int) {
	prompt := "❯ "
	drawText(a.screen, 1, row, width-2, StyleBorder, prompt)

	inputStyle := StyleDefault
	drawText(a.screen, 1+len([]rune(prompt)), row, width-4, inputStyle, a.input.Content())

	cursorCol := 1 + len([]rune(prompt)) + a.input.Cursor()
	if cursorCol < width {
		a.screen.ShowCursor(cursorCol, row)
	}
}
