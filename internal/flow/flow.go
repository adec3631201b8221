// Package flow wires browser, backend and presenter together into the operations
// an operator triggers. Each flow reports one status and logs the cause at debug level.
package flow

import (
	"context"
	"log/slog"

	"github.com/kernel/devpanel/internal/bfx"
	"github.com/kernel/devpanel/internal/presenter"
)

// Presenter is the part of presenter.Presenter flows use.
type Presenter interface {
	Notify(outcome presenter.Outcome, message string)
	CopyToClipboard(text string) error
}

// TokenSource yields the session token of the active page.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SettingsWriter pushes a settings payload to the backend.
type SettingsWriter interface {
	Apply(ctx context.Context, token, payload string) (*bfx.ApplyResult, error)
}

// Error is returned by a flow that failed. Its message is the operator-facing
// summary; the cause is available through errors.Is and errors.As.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + " failed" }

func (e *Error) Unwrap() error { return e.Err }

func fail(ctx context.Context, p Presenter, op string, err error) error {
	slog.DebugContext(ctx, "operation failed", "op", op, "error", err)
	p.Notify(presenter.Failed, "Failed")
	return &Error{Op: op, Err: err}
}
