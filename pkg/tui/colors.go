package tui

import "github.com/gdamore/tcell/v2"

// Color constants for the terminal theme
var (
	// Primary text colors
	ColorUserText      = tcell.NewRGBColor(255, 176, 0)   // Warm amber - for user messages
	ColorAssistantText = tcell.NewRGBColor(0, 255, 135)   // Mint green - for assistant messages
	ColorDimText       = tcell.NewRGBColor(169, 169, 169) // Gray - for secondary text
	ColorHeaderText    = tcell.NewRGBColor(175, 175, 175) // Light gray - for muted headers

	// UI element colors
	ColorBorder       = tcell.NewRGBColor(255, 215, 0) // Gold - for borders
	ColorBorderActive = tcell.NewRGBColor(255, 165, 0) // Orange - for the focused pane
	ColorBorderError  = tcell.NewRGBColor(255, 99, 71) // Tomato - for error panels

	// Status colors
	ColorStatusBusy  = tcell.NewRGBColor(255, 218, 185) // Peach - streaming/tool activity
	ColorStatusError = tcell.NewRGBColor(255, 182, 193) // Light pink - failure notices
	ColorToolChip    = tcell.NewRGBColor(255, 128, 255) // Soft magenta - tools-used chips

	// Map panel colors
	ColorPlaceName   = tcell.NewRGBColor(255, 255, 128) // Pale yellow - place names
	ColorPlaceDetail = tcell.NewRGBColor(176, 224, 230) // Powder blue - addresses and phones

	ColorBackground = tcell.ColorBlack
)

// Style presets combining colors with text attributes
var (
	StyleDefault       = tcell.StyleDefault.Background(ColorBackground)
	StyleUserText      = StyleDefault.Foreground(ColorUserText)
	StyleAssistantText = StyleDefault.Foreground(ColorAssistantText)
	StyleDimText       = StyleDefault.Foreground(ColorDimText)
	StyleHeader        = StyleDefault.Foreground(ColorHeaderText).Bold(true)
	StyleBorder        = StyleDefault.Foreground(ColorBorder)
	StyleBorderError   = StyleDefault.Foreground(ColorBorderError)
	StyleStatusBusy    = StyleDefault.Foreground(ColorStatusBusy)
	StyleNotification  = StyleDefault.Foreground(ColorStatusError).Bold(true)
	StyleToolChip      = StyleDefault.Foreground(ColorToolChip)
	StylePlaceName     = StyleDefault.Foreground(ColorPlaceName).Bold(true)
	StylePlaceDetail   = StyleDefault.Foreground(ColorPlaceDetail)
)
