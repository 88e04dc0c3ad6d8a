// Package style provides the shared color palette for ply's terminal
// output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Green  = lipgloss.Color("#22A06B")
	Yellow = lipgloss.Color("#F59E0B")
	Red    = lipgloss.Color("#D93025")
	Slate  = lipgloss.Color("#667085")
)
