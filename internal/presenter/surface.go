package presenter

import (
	"sync"

	"github.com/pterm/pterm"
)

func styled(outcome Outcome, message string) string {
	if outcome == Failed {
		return pterm.Error.Sprint(message)
	}
	return pterm.Success.Sprint(message)
}

// StatusLine holds the current status for an interactive menu to render in its
// prompt. It never writes to the terminal, so the clear timer cannot draw over
// a prompt that is being shown.
type StatusLine struct {
	mu   sync.Mutex
	text string
}

func (s *StatusLine) Show(outcome Outcome, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = styled(outcome, message)
}

func (s *StatusLine) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = ""
}

// Text returns the status currently shown, or "" once it has cleared.
func (s *StatusLine) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// PrinterSurface prints each status on its own line. Clear is a no-op since
// printed lines cannot be taken back; used by one-shot commands.
type PrinterSurface struct{}

func (PrinterSurface) Show(outcome Outcome, message string) {
	pterm.Println(styled(outcome, message))
}

func (PrinterSurface) Clear() {}
