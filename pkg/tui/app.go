package tui

import (
	"context"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/jihoonly/matzip/pkg/chat"
	"github.com/jihoonly/matzip/pkg/client"
	"github.com/jihoonly/matzip/pkg/config"
	"github.com/jihoonly/matzip/pkg/logger"
)

const spinnerInterval = 120 * time.Millisecond

// App owns the terminal screen and wires keyboard input, the chat reducer,
// and the streaming client together. All state is touched from the event
// loop goroutine only; stream goroutines talk to it by posting events.
type App struct {
	screen  tcell.Screen
	client  *client.Client
	reducer *chat.Reducer

	input       InputField
	spinner     Spinner
	activePanel *MapPanel

	scrollOffset int
	quit         bool
}

// StartApp initializes the terminal and runs the chat session until the user
// quits.
func StartApp(backend *client.Client) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	width, _ := screen.Size()
	app := &App{
		screen:  screen,
		client:  backend,
		reducer: chat.NewReducer(),
		input:   NewInputField(width),
		spinner: NewSpinner(),
	}

	app.run()
	return nil
}

func (a *App) run() {
	for !a.quit {
		a.render()

		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			a.handleKey(ev)
		case *tcell.EventResize:
			width, _ := a.screen.Size()
			a.input = a.input.WithWidth(width)
			a.screen.Sync()
		case *StreamProgressEvent:
			// Reducer state already advanced; redraw on next loop.
		case *TurnFinishedEvent:
			a.finishTurn(ev.Final)
		case *SpinnerTickEvent:
			a.spinner = a.spinner.NextFrame()
			a.scheduleSpinnerTick()
		case *ToolsExpiredEvent:
			// Chips dropped by the reducer; redraw picks it up.
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	// Marker keys go to the map panel: Esc clears a selection, Alt+digit
	// selects, so plain digits still type into the input.
	if ev.Key() == tcell.KeyEscape && a.activePanel.HandleKey(ev) {
		return
	}
	if ev.Modifiers()&tcell.ModAlt != 0 && ev.Key() == tcell.KeyRune {
		if a.activePanel.HandleKey(ev) {
			return
		}
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		a.quit = true
	case tcell.KeyCtrlN:
		a.newConversation()
	case tcell.KeyEnter:
		a.submit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.input = a.input.DeleteBackward()
	case tcell.KeyLeft:
		a.input = a.input.CursorLeft()
	case tcell.KeyRight:
		a.input = a.input.CursorRight()
	case tcell.KeyHome, tcell.KeyCtrlA:
		a.input = a.input.CursorHome()
	case tcell.KeyEnd, tcell.KeyCtrlE:
		a.input = a.input.CursorEnd()
	case tcell.KeyCtrlU:
		a.input = a.input.Clear()
	case tcell.KeyPgUp:
		a.scrollOffset += 5
	case tcell.KeyPgDn:
		a.scrollOffset -= 5
		if a.scrollOffset < 0 {
			a.scrollOffset = 0
		}
	case tcell.KeyRune:
		a.input = a.input.InsertRune(ev.Rune())
	}
}

// submit sends the typed message and kicks off a streaming turn.
func (a *App) submit() {
	text := strings.TrimSpace(a.input.Content())
	if text == "" || a.reducer.Streaming() {
		return
	}

	a.input = a.input.Clear()
	a.scrollOffset = 0
	a.reducer.Begin(chat.NewUserMessage(text, nil))
	a.spinner = a.spinner.WithVisibility(true)
	a.scheduleSpinnerTick()

	go a.runTurn(text)
}

// runTurn consumes one streaming response off the event loop goroutine. It
// never touches App fields directly; progress is posted back as events.
func (a *App) runTurn(message string) {
	ch, err := a.client.Stream(context.Background(), message, nil)
	if err != nil {
		logger.Error("Stream request failed: %v", err)
		a.reducer.Fail("")
	} else {
		for event := range ch {
			a.reducer.Apply(event)
			a.screen.PostEvent(NewStreamProgressEvent())
		}
	}

	final := a.reducer.Finish()

	grace := time.Duration(config.Get().Chat.ToolGraceMS) * time.Millisecond
	time.AfterFunc(grace, func() {
		a.reducer.ExpireTools()
		a.screen.PostEvent(NewToolsExpiredEvent())
	})

	a.screen.PostEvent(NewTurnFinishedEvent(final))
}

func (a *App) finishTurn(final chat.Message) {
	a.spinner = a.spinner.WithVisibility(false)
	if final.MapPayload != "" {
		a.activePanel = NewMapPanel(final.MapPayload)
	}
}

// newConversation resets the session on both ends. An in-flight stream is not
// cancelled; its turn finishes against the fresh history.
func (a *App) newConversation() {
	a.client.ClearSession()
	a.reducer.Reset()
	a.activePanel = nil
	a.scrollOffset = 0
}

func (a *App) scheduleSpinnerTick() {
	if !a.spinner.Visible {
		return
	}
	time.AfterFunc(spinnerInterval, func() {
		a.screen.PostEvent(NewSpinnerTickEvent())
	})
}
