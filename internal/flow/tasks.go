package flow

import (
	"context"
	"io"
	"strings"

	"github.com/kernel/devpanel/internal/browser"
	"github.com/kernel/devpanel/internal/crowdin"
	"github.com/kernel/devpanel/internal/presenter"
)

// snapshotExpression serializes the rendered DOM of the page.
const snapshotExpression = "document.documentElement.outerHTML"

// CopiedMessage is shown after a report lands on the clipboard.
const CopiedMessage = "Result copied to buffer:"

// Tasks builds translation request reports from a Crowdin task board.
type Tasks struct {
	Platform  browser.Platform
	Renderer  *crowdin.Renderer
	Presenter Presenter
	// NoCopy leaves the clipboard untouched.
	NoCopy bool
}

// Report scrapes the board open in the active tab.
func (t *Tasks) Report(ctx context.Context) (string, error) {
	const op = "tasks report"

	tab, err := t.Platform.ActiveTab(ctx)
	if err != nil {
		return "", fail(ctx, t.Presenter, op, err)
	}
	var html string
	if err := t.Platform.Evaluate(ctx, tab, snapshotExpression, &html); err != nil {
		return "", fail(ctx, t.Presenter, op, err)
	}
	return t.ReportFromHTML(ctx, strings.NewReader(html))
}

// ReportFromHTML builds the report from a saved page.
func (t *Tasks) ReportFromHTML(ctx context.Context, r io.Reader) (string, error) {
	const op = "tasks report"

	doc, err := crowdin.NewHTMLDocument(r)
	if err != nil {
		return "", fail(ctx, t.Presenter, op, err)
	}
	report := t.Renderer.Report(doc)

	if t.NoCopy {
		return report, nil
	}
	if err := t.Presenter.CopyToClipboard(report); err != nil {
		return report, fail(ctx, t.Presenter, op, err)
	}
	t.Presenter.Notify(presenter.Done, CopiedMessage)
	return report, nil
}
