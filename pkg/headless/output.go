package headless

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/jihoonly/matzip/pkg/places"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	placeNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// Output handles console output for headless mode
type Output struct{}

// NewOutput creates a new output handler
func NewOutput() *Output {
	return &Output{}
}

// Error prints an error message to stderr
func (o *Output) Error(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(msg))
}

// Places prints the decoded places as a numbered list
func (o *Output) Places(list []places.Place) {
	if len(list) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(headingStyle.Render("Places"))
	for i, place := range list {
		fmt.Printf("  %d. %s %s\n", i+1,
			placeNameStyle.Render(place.Name),
			detailStyle.Render(fmt.Sprintf("(%.6f, %.6f)", place.Lat, place.Lng)))
		if place.Address != "" {
			fmt.Printf("     %s\n", detailStyle.Render(place.Address))
		}
		if place.Phone != "" {
			fmt.Printf("     %s\n", detailStyle.Render(place.Phone))
		}
	}
}

// Image prints a result image link
func (o *Output) Image(url string) {
	fmt.Printf("%s %s\n", headingStyle.Render("Image:"), detailStyle.Render(url))
}
