package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/jihoonly/matzip/pkg/config"
	"github.com/jihoonly/matzip/pkg/mapview"
	"github.com/jihoonly/matzip/pkg/places"
)

// TextMap is the terminal-side implementation of the mapview capability
// interface. It has no tiles to draw; it tracks the viewport the engine asks
// for and the panel renders a legend around it.
type TextMap struct {
	CenterLat float64
	CenterLng float64
	level     int
}

func (t *TextMap) SetCenter(lat, lng float64) { t.CenterLat, t.CenterLng = lat, lng }
func (t *TextMap) PanTo(lat, lng float64)     { t.CenterLat, t.CenterLng = lat, lng }
func (t *TextMap) Level() int                 { return t.level }
func (t *TextMap) SetLevel(level int)         { t.level = level }
func (t *TextMap) Relayout()                  {}

func (t *TextMap) FitBounds(b mapview.Bounds) {
	if b.Empty() {
		return
	}
	t.CenterLat, t.CenterLng = b.Center()
}

// MapPanel renders the places attached to a finalized message and owns the
// engine driving marker selection. Number keys select markers, Esc clears.
type MapPanel struct {
	engine *TextMapEngine
	err    error
}

// TextMapEngine pairs the engine with its text map so the panel can show the
// viewport state.
type TextMapEngine struct {
	*mapview.Engine
	Map *TextMap
}

// NewMapPanel decodes a location payload and builds the interaction engine.
// A payload with no places yields a nil panel: nothing to render.
func NewMapPanel(payload string) *MapPanel {
	list := places.Parse(payload)
	if len(list) == 0 {
		return nil
	}

	settings := config.Get()
	textMap := &TextMap{}
	// A text map has no layout to settle, so the deferred refits run
	// synchronously here; a real map SDK adapter keeps the timers.
	engine, err := mapview.NewEngine(textMap, list,
		mapview.WithLevels(settings.Map.DefaultLevel, settings.Map.SinglePlaceLevel),
		mapview.WithDeferFunc(func(d time.Duration, fn func()) { fn() }))
	if err != nil {
		return &MapPanel{err: err}
	}

	engine.Fit()
	return &MapPanel{engine: &TextMapEngine{Engine: engine, Map: textMap}}
}

// HandleKey processes marker selection keys. Returns true if the key was
// consumed.
func (mp *MapPanel) HandleKey(ev *tcell.EventKey) bool {
	if mp == nil || mp.engine == nil {
		return false
	}

	switch {
	case ev.Key() == tcell.KeyEscape:
		if _, ok := mp.engine.Selected(); !ok {
			return false
		}
		mp.engine.ClearSelection()
		return true
	case ev.Key() == tcell.KeyRune && ev.Rune() >= '1' && ev.Rune() <= '9':
		mp.engine.Select(int(ev.Rune()-'1'))
		return true
	}
	return false
}

// Height returns the number of screen rows the panel wants.
func (mp *MapPanel) Height() int {
	if mp == nil {
		return 0
	}
	if mp.err != nil {
		return 2
	}

	h := 1 + len(mp.engine.Places()) // header + one row per marker
	if _, ok := mp.engine.SelectedPlace(); ok {
		h += 4 // detail block
	}
	return h
}

// Draw renders the panel into the given region.
func (mp *MapPanel) Draw(screen tcell.Screen, x, y, width int) {
	if mp == nil {
		return
	}

	if mp.err != nil {
		drawText(screen, x, y, width, StyleBorderError, "📍 Location")
		drawText(screen, x, y+1, width, StyleDimText, "Map unavailable: "+mp.err.Error())
		return
	}

	header := fmt.Sprintf("📍 Location (%.4f, %.4f, zoom %d)",
		mp.engine.Map.CenterLat, mp.engine.Map.CenterLng, mp.engine.Map.Level())
	drawText(screen, x, y, width, StyleHeader, header)
	row := y + 1

	for _, marker := range mp.engine.Markers() {
		style := markerRowStyle(marker)
		label := fmt.Sprintf(" %d. %s", marker.Label(), marker.Place.Name)
		if marker.Place.Category != "" {
			label += "  (" + marker.Place.Category + ")"
		}
		if marker.Selected {
			label = "▶" + label
		} else {
			label = " " + label
		}
		drawText(screen, x, row, width, style, label)
		row++
	}

	if place, ok := mp.engine.SelectedPlace(); ok {
		drawText(screen, x+2, row, width-2, StylePlaceName, place.Name)
		row++
		if place.Address != "" {
			drawText(screen, x+2, row, width-2, StylePlaceDetail, "📍 "+place.Address)
			row++
		}
		if place.Phone != "" {
			drawText(screen, x+2, row, width-2, StylePlaceDetail, "📞 "+place.Phone)
			row++
		}
		if place.Link != "" {
			drawText(screen, x+2, row, width-2, StyleDimText, place.Link)
		}
	}
}

// markerRowStyle maps the engine's pure visual descriptor onto a tcell style.
func markerRowStyle(marker mapview.Marker) tcell.Style {
	style := StyleDefault.Foreground(hexColor(marker.Style.Color))
	if marker.Selected {
		style = style.Bold(true)
	}
	return style
}

func hexColor(hex string) tcell.Color {
	var r, g, b int32
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return tcell.ColorWhite
	}
	return tcell.NewRGBColor(r, g, b)
}
