package mapview

import "github.com/jihoonly/matzip/pkg/places"

// MarkerPalette is cycled by marker index. Three colors is enough to keep
// adjacent numbered markers distinct.
var MarkerPalette = []string{"#FF6B6B", "#4ECDC4", "#45B7D1"}

// Style is the visual descriptor of one marker. Every field derives from
// whether the marker is the selected one.
type Style struct {
	Color       string
	Size        int
	FontSize    int
	BorderWidth int
	Scale       float64
	HeavyShadow bool
}

// Marker is one rendered marker: a numbered badge at a place.
type Marker struct {
	Index    int
	Place    places.Place
	Selected bool
	Style    Style
}

// Label returns the 1-based number shown in the badge.
func (m Marker) Label() int {
	return m.Index + 1
}

// MarkerStyle derives a marker's visual from its index and the currently
// selected index. It is pure: re-render all markers whenever selection changes.
func MarkerStyle(index, selectedIndex int) Style {
	style := Style{
		Color:       MarkerPalette[index%len(MarkerPalette)],
		Size:        32,
		FontSize:    14,
		BorderWidth: 3,
		Scale:       1.0,
	}

	if index == selectedIndex {
		style.Size = 38
		style.FontSize = 16
		style.BorderWidth = 4
		style.Scale = 1.1
		style.HeavyShadow = true
	}

	return style
}
