package runner

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/ui/output"
	"go.trai.ch/ply/internal/ui/style"
)

// Recap prints the end-of-run per-host summary.
type Recap struct {
	out io.Writer

	header      lipgloss.Style
	host        lipgloss.Style
	okStyle     lipgloss.Style
	changeStyle lipgloss.Style
	failStyle   lipgloss.Style
}

// NewRecap creates a recap printer. With color disabled (or NO_COLOR
// set) the output degrades to plain text.
func NewRecap(out io.Writer, color bool) *Recap {
	renderer := output.Renderer(out, color)

	return &Recap{
		out:         out,
		header:      renderer.NewStyle().Bold(true),
		host:        renderer.NewStyle().Bold(true),
		okStyle:     renderer.NewStyle().Foreground(style.Green),
		changeStyle: renderer.NewStyle().Foreground(style.Yellow),
		failStyle:   renderer.NewStyle().Foreground(style.Red),
	}
}

// Print writes one line per host in first-seen order.
func (r *Recap) Print(stats *domain.RunStats) {
	fmt.Fprintln(r.out, r.header.Render("PLAY RECAP"))

	for _, entry := range stats.Entries() {
		s := entry.Stats
		line := fmt.Sprintf("%-26s : %s %s %s %s",
			r.host.Render(entry.Host),
			r.styleFor(s.OK > 0 && s.Failures == 0 && s.Unreachable == 0, r.okStyle, fmt.Sprintf("ok=%d", s.OK)),
			r.styleFor(s.Changed > 0, r.changeStyle, fmt.Sprintf("changed=%d", s.Changed)),
			r.styleFor(s.Unreachable > 0, r.failStyle, fmt.Sprintf("unreachable=%d", s.Unreachable)),
			r.styleFor(s.Failures > 0, r.failStyle, fmt.Sprintf("failed=%d", s.Failures)),
		)
		fmt.Fprintln(r.out, line)
	}
}

// styleFor highlights a counter only when it is significant.
func (r *Recap) styleFor(on bool, style lipgloss.Style, s string) string {
	if !on {
		return s
	}
	return style.Render(s)
}
