// Package output creates lipgloss renderers with consistent color
// profile handling across ply's terminal surfaces.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Profile returns the color profile for the run. It honors NO_COLOR
// and the explicit color switch, detecting the terminal's capabilities
// otherwise.
func Profile(color bool) termenv.Profile {
	if !color || os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// Renderer creates a lipgloss renderer for w using Profile.
func Renderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(Profile(color))
	return r
}
