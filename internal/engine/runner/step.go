package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/ply/internal/core/domain"
)

// prompter asks the operator before each task in --step mode.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter() *prompter {
	return &prompter{in: bufio.NewReader(os.Stdin), out: os.Stderr}
}

// SetPromptIO redirects the step prompt streams. Used by tests.
func (r *Runner) SetPromptIO(in io.Reader, out io.Writer) {
	r.prompter.in = bufio.NewReader(in)
	r.prompter.out = out
}

// ask prompts for one task. proceed reports whether to run it, stop
// whether to stop prompting for the rest of the run. EOF and an
// explicit abort both end the run.
func (p *prompter) ask(taskName string) (proceed, stop bool, err error) {
	fmt.Fprintf(p.out, "Perform task: %s (N)o/(y)es/(c)ontinue/(a)bort: ", taskName)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, false, domain.ErrRunAborted
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, false, nil
	case "c", "continue":
		return true, true, nil
	case "a", "abort":
		return false, false, domain.ErrRunAborted
	default:
		return false, false, nil
	}
}
