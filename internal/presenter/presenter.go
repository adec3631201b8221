// Package presenter shows operation results to the operator: a short status line
// that clears itself, and the system clipboard.
package presenter

import (
	"fmt"
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

// DefaultClearAfter is how long a status stays visible.
const DefaultClearAfter = time.Second

// Outcome is the kind of status shown.
type Outcome int

const (
	Done Outcome = iota
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Surface displays at most one status at a time.
type Surface interface {
	Show(outcome Outcome, message string)
	Clear()
}

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemClipboard is the OS clipboard.
var SystemClipboard Clipboard = systemClipboard{}

// Presenter owns the status surface and clipboard for one command invocation.
type Presenter struct {
	surface    Surface
	clipboard  Clipboard
	clearAfter time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	closed bool
}

type Option func(*Presenter)

func WithClipboard(c Clipboard) Option {
	return func(p *Presenter) { p.clipboard = c }
}

func WithClearAfter(d time.Duration) Option {
	return func(p *Presenter) { p.clearAfter = d }
}

func New(surface Surface, opts ...Option) *Presenter {
	p := &Presenter{
		surface:    surface,
		clipboard:  SystemClipboard,
		clearAfter: DefaultClearAfter,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CopyToClipboard places text on the clipboard.
func (p *Presenter) CopyToClipboard(text string) error {
	if err := p.clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// Notify replaces the current status with message and schedules it to clear.
// Notify after Close is a no-op.
func (p *Presenter) Notify(outcome Outcome, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.seq++
	seq := p.seq
	p.surface.Show(outcome, message)
	p.timer = time.AfterFunc(p.clearAfter, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		// A newer status owns the surface.
		if p.closed || p.seq != seq {
			return
		}
		p.surface.Clear()
		p.timer = nil
	})
}

// Close cancels the pending clear. The last status stays on the surface.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
