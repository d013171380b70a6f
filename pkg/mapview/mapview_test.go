package mapview_test

import (
	"testing"
	"time"

	"github.com/jihoonly/matzip/pkg/mapview"
	"github.com/jihoonly/matzip/pkg/places"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMap records every capability call so tests can assert the exact viewport
// choreography.
type fakeMap struct {
	centerLat, centerLng float64
	level                int
	panned               [][2]float64
	fitted               []mapview.Bounds
	relayouts            int
}

func (f *fakeMap) SetCenter(lat, lng float64) { f.centerLat, f.centerLng = lat, lng }
func (f *fakeMap) PanTo(lat, lng float64)     { f.panned = append(f.panned, [2]float64{lat, lng}) }
func (f *fakeMap) FitBounds(b mapview.Bounds) { f.fitted = append(f.fitted, b) }
func (f *fakeMap) Level() int                 { return f.level }
func (f *fakeMap) SetLevel(level int)         { f.level = level }
func (f *fakeMap) Relayout()                  { f.relayouts++ }

// immediate runs deferred refits synchronously.
func immediate(d time.Duration, fn func()) { fn() }

func threePlaces() []places.Place {
	return []places.Place{
		{Lat: 37.1, Lng: 127.1, Name: "Cafe"},
		{Lat: 37.2, Lng: 127.2, Name: "Diner"},
		{Lat: 37.3, Lng: 127.3, Name: "Market"},
	}
}

func newEngine(t *testing.T, m mapview.Map, list []places.Place) *mapview.Engine {
	t.Helper()
	engine, err := mapview.NewEngine(m, list, mapview.WithDeferFunc(immediate))
	require.NoError(t, err)
	return engine
}

func TestNewEngineRequiresMap(t *testing.T) {
	_, err := mapview.NewEngine(nil, threePlaces())

	require.ErrorIs(t, err, mapview.ErrUnavailable)
}

func TestNewEngineCentersOnFirstPlace(t *testing.T) {
	m := &fakeMap{}
	newEngine(t, m, threePlaces())

	assert.Equal(t, 37.1, m.centerLat)
	assert.Equal(t, 127.1, m.centerLng)
	assert.Equal(t, 4, m.level)
}

func TestFitMultiplePlaces(t *testing.T) {
	m := &fakeMap{}
	engine := newEngine(t, m, threePlaces())

	engine.Fit()

	require.Equal(t, 1, m.relayouts, "fit must wait for layout to settle")
	require.Len(t, m.fitted, 1)
	assert.Equal(t, 37.1, m.fitted[0].MinLat)
	assert.Equal(t, 37.3, m.fitted[0].MaxLat)
	assert.Equal(t, 127.1, m.fitted[0].MinLng)
	assert.Equal(t, 127.3, m.fitted[0].MaxLng)

	// One discrete zoom-out after the bounds fit, for margin.
	assert.Equal(t, 5, m.level)
}

func TestFitSinglePlace(t *testing.T) {
	m := &fakeMap{}
	engine := newEngine(t, m, threePlaces()[:1])

	engine.Fit()

	assert.Empty(t, m.fitted)
	assert.Equal(t, 37.1, m.centerLat)
	assert.Equal(t, 3, m.level)
}

func TestFitNoPlacesIsNoOp(t *testing.T) {
	m := &fakeMap{}
	engine := newEngine(t, m, nil)

	engine.Fit()

	assert.Zero(t, m.relayouts)
	assert.Empty(t, m.fitted)
}

func TestSelectExclusive(t *testing.T) {
	m := &fakeMap{}
	engine := newEngine(t, m, threePlaces())

	engine.Select(0)
	engine.Select(2)
	engine.Select(1)

	selected, ok := engine.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, selected)

	// Exactly one marker may be selected, no matter the history.
	count := 0
	for _, marker := range engine.Markers() {
		if marker.Selected {
			count++
			assert.Equal(t, 1, marker.Index)
		}
	}
	assert.Equal(t, 1, count)

	// Each selection pans to its place.
	require.Len(t, m.panned, 3)
	assert.Equal(t, [2]float64{37.2, 127.2}, m.panned[2])
}

func TestSelectOutOfRangeIgnored(t *testing.T) {
	m := &fakeMap{}
	engine := newEngine(t, m, threePlaces())

	engine.Select(7)
	engine.Select(-1)

	_, ok := engine.Selected()
	assert.False(t, ok)
	assert.Empty(t, m.panned)
}

func TestClearSelection(t *testing.T) {
	m := &fakeMap{}
	engine := newEngine(t, m, threePlaces())

	engine.Select(1)
	engine.ClearSelection()

	_, ok := engine.Selected()
	assert.False(t, ok)
	for _, marker := range engine.Markers() {
		assert.False(t, marker.Selected)
	}
}

func TestMarkersCyclePalette(t *testing.T) {
	list := make([]places.Place, 5)
	for i := range list {
		list[i] = places.Place{Lat: float64(i), Lng: float64(i)}
	}
	engine := newEngine(t, &fakeMap{}, list)

	markers := engine.Markers()
	require.Len(t, markers, 5)
	assert.Equal(t, mapview.MarkerPalette[0], markers[0].Style.Color)
	assert.Equal(t, mapview.MarkerPalette[1], markers[1].Style.Color)
	assert.Equal(t, mapview.MarkerPalette[2], markers[2].Style.Color)
	assert.Equal(t, mapview.MarkerPalette[0], markers[3].Style.Color)
	assert.Equal(t, 1, markers[0].Label())
}

func TestMarkerStyleDerivation(t *testing.T) {
	normal := mapview.MarkerStyle(0, 1)
	selected := mapview.MarkerStyle(1, 1)

	assert.Equal(t, 32, normal.Size)
	assert.Equal(t, 38, selected.Size)
	assert.Equal(t, 3, normal.BorderWidth)
	assert.Equal(t, 4, selected.BorderWidth)
	assert.False(t, normal.HeavyShadow)
	assert.True(t, selected.HeavyShadow)
	assert.InDelta(t, 1.1, selected.Scale, 0.001)
}

func TestDeferredRefitUsesTimers(t *testing.T) {
	m := &fakeMap{}
	var queued []func()
	engine, err := mapview.NewEngine(m, threePlaces(), mapview.WithDeferFunc(func(d time.Duration, fn func()) {
		queued = append(queued, fn)
	}))
	require.NoError(t, err)

	engine.Fit()

	// Nothing applied until the layout timer fires.
	require.Len(t, queued, 1)
	assert.Zero(t, m.relayouts)

	queued[0]()
	assert.Equal(t, 1, m.relayouts)
	require.Len(t, m.fitted, 1)

	// The margin zoom-out is a second deferred step.
	require.Len(t, queued, 2)
	level := m.level
	queued[1]()
	assert.Equal(t, level+1, m.level)
}
