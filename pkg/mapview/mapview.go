// Package mapview drives a map surface showing one or more decoded places,
// owning marker visuals and exclusive selection. The actual map is an external
// capability behind the Map interface; the engine never reaches past it.
package mapview

import (
	"errors"
	"time"

	"github.com/jihoonly/matzip/pkg/logger"
	"github.com/jihoonly/matzip/pkg/places"
)

// ErrUnavailable is returned when no mapping capability is present. Callers
// render an inline error state instead of a map; the surrounding message is
// unaffected.
var ErrUnavailable = errors.New("mapping capability unavailable")

// Map is the minimal viewport capability the engine depends on. Levels follow
// the Kakao convention: a larger level is zoomed further out.
type Map interface {
	SetCenter(lat, lng float64)
	PanTo(lat, lng float64)
	FitBounds(b Bounds)
	Level() int
	SetLevel(level int)
	Relayout()
}

// Bounds is a geographic bounding region built up marker by marker.
type Bounds struct {
	MinLat, MinLng float64
	MaxLat, MaxLng float64
	set            bool
}

// Extend grows the bounds to cover the given point.
func (b *Bounds) Extend(lat, lng float64) {
	if !b.set {
		b.MinLat, b.MaxLat = lat, lat
		b.MinLng, b.MaxLng = lng, lng
		b.set = true
		return
	}
	if lat < b.MinLat {
		b.MinLat = lat
	}
	if lat > b.MaxLat {
		b.MaxLat = lat
	}
	if lng < b.MinLng {
		b.MinLng = lng
	}
	if lng > b.MaxLng {
		b.MaxLng = lng
	}
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() (lat, lng float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLng + b.MaxLng) / 2
}

// Empty reports whether nothing has been added yet.
func (b Bounds) Empty() bool {
	return !b.set
}

// Option configures an Engine.
type Option func(*Engine)

// WithLevels overrides the default and single-place zoom levels.
func WithLevels(defaultLevel, singlePlaceLevel int) Option {
	return func(e *Engine) {
		e.defaultLevel = defaultLevel
		e.singleLevel = singlePlaceLevel
	}
}

// WithDeferFunc replaces the timer used for deferred viewport refits. Tests
// inject a synchronous version.
func WithDeferFunc(deferFn func(d time.Duration, fn func())) Option {
	return func(e *Engine) {
		e.deferFn = deferFn
	}
}

// Engine owns marker state for an ordered place list. At most one marker is
// selected at a time; every marker's visual derives from that single index.
type Engine struct {
	m        Map
	places   []places.Place
	selected int

	defaultLevel int
	singleLevel  int
	deferFn      func(d time.Duration, fn func())
}

// Layout settle delays: the container may not have final dimensions when
// markers are placed, so the fit is re-applied after the surface has had a
// moment to settle, and the margin zoom-out happens a beat after that.
const (
	layoutSettleDelay = 100 * time.Millisecond
	marginZoomDelay   = 50 * time.Millisecond
)

// NewEngine places markers for the given places on the map. The initial view
// centers on the first place; call Fit to apply the view-fitting policy.
func NewEngine(m Map, list []places.Place, opts ...Option) (*Engine, error) {
	if m == nil {
		return nil, ErrUnavailable
	}

	e := &Engine{
		m:            m,
		places:       list,
		selected:     -1,
		defaultLevel: 4,
		singleLevel:  3,
		deferFn:      func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
	for _, opt := range opts {
		opt(e)
	}

	if len(list) > 0 {
		m.SetCenter(list[0].Lat, list[0].Lng)
		m.SetLevel(e.defaultLevel)
	}

	logger.Debug("Map engine created with %d places", len(list))
	return e, nil
}

// Places returns the ordered place list backing the markers.
func (e *Engine) Places() []places.Place {
	return e.places
}

// Fit applies the view-fitting policy once the layout has settled: for several
// places, fit to the bounds covering all of them and zoom out one level for
// margin; for a single place, center on it at a fixed close level.
func (e *Engine) Fit() {
	if len(e.places) == 0 {
		return
	}

	e.deferFn(layoutSettleDelay, func() {
		e.m.Relayout()

		if len(e.places) > 1 {
			var b Bounds
			for _, p := range e.places {
				b.Extend(p.Lat, p.Lng)
			}
			e.m.FitBounds(b)

			e.deferFn(marginZoomDelay, func() {
				e.m.SetLevel(e.m.Level() + 1)
			})
		} else {
			e.m.SetCenter(e.places[0].Lat, e.places[0].Lng)
			e.m.SetLevel(e.singleLevel)
		}
	})
}

// Select makes marker i the single selected marker and pans the viewport to
// its place. Selecting replaces any previous selection atomically. An index
// outside the place list is ignored.
func (e *Engine) Select(i int) {
	if i < 0 || i >= len(e.places) {
		return
	}
	e.m.PanTo(e.places[i].Lat, e.places[i].Lng)
	e.selected = i
}

// ClearSelection deselects all markers. Clicking the map background does this.
func (e *Engine) ClearSelection() {
	e.selected = -1
}

// Selected returns the selected marker index, if any.
func (e *Engine) Selected() (int, bool) {
	if e.selected < 0 {
		return 0, false
	}
	return e.selected, true
}

// SelectedPlace returns the selected place, if any.
func (e *Engine) SelectedPlace() (places.Place, bool) {
	if e.selected < 0 {
		return places.Place{}, false
	}
	return e.places[e.selected], true
}

// Markers derives the current marker descriptors. Visuals are a pure function
// of (index, selected index); no per-marker state exists to get out of sync.
func (e *Engine) Markers() []Marker {
	result := make([]Marker, len(e.places))
	for i, p := range e.places {
		result[i] = Marker{
			Index:    i,
			Place:    p,
			Selected: i == e.selected,
			Style:    MarkerStyle(i, e.selected),
		}
	}
	return result
}
