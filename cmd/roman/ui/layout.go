// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for viewport and panel sizing
const (
	// Chrome around the active page
	HeaderHeight  = 1
	TabBarHeight  = 2
	FooterHeight  = 2
	ContentPadV   = 2 // Content style vertical padding (top + bottom)
	ContentPadH   = 4 // Content style horizontal padding (left + right)
	InputMinWidth = 20

	// Responsive breakpoints
	MinimumTerminalWidth  = 40
	MinimumTerminalHeight = 12
	CompactModeWidth      = 70
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable width inside the page padding
func (l LayoutConfig) ContentWidth() int {
	return max(l.TerminalWidth-ContentPadH, MinimumTerminalWidth-ContentPadH)
}

// ContentHeight returns the usable height once header, tabs, footer and
// padding are subtracted
func (l LayoutConfig) ContentHeight() int {
	h := l.TerminalHeight - HeaderHeight - TabBarHeight - FooterHeight - ContentPadV
	return max(h, MinimumTerminalHeight-HeaderHeight-TabBarHeight-FooterHeight-ContentPadV)
}

// InputWidth returns a text input width that fits the content area
func (l LayoutConfig) InputWidth() int {
	return max(min(l.ContentWidth()-4, 60), InputMinWidth)
}
