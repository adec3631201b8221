package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeTaskReporter struct {
	ReportFunc         func(ctx context.Context) (string, error)
	ReportFromHTMLFunc func(ctx context.Context, r io.Reader) (string, error)
}

func (f *FakeTaskReporter) Report(ctx context.Context) (string, error) {
	if f.ReportFunc != nil {
		return f.ReportFunc(ctx)
	}
	return "", nil
}

func (f *FakeTaskReporter) ReportFromHTML(ctx context.Context, r io.Reader) (string, error) {
	if f.ReportFromHTMLFunc != nil {
		return f.ReportFromHTMLFunc(ctx, r)
	}
	return "", nil
}

const sampleReport = "Please help translate: Footer\n:jp: https://crowdin.com/t/3"

func TestTasksReport_PrintsFramedReport(t *testing.T) {
	setupStdoutCapture(t)

	c := TasksCmd{reporter: &FakeTaskReporter{ReportFunc: func(ctx context.Context) (string, error) {
		return sampleReport, nil
	}}}
	require.NoError(t, c.Report(context.Background(), TasksReportInput{}))

	out := outBuf.String()
	assert.Contains(t, out, "Please help translate: Footer")
	assert.Contains(t, out, ":jp: https://crowdin.com/t/3")
}

func TestTasksReport_EmptyBoardWarns(t *testing.T) {
	setupStdoutCapture(t)

	c := TasksCmd{reporter: &FakeTaskReporter{}}
	require.NoError(t, c.Report(context.Background(), TasksReportInput{}))
	assert.Contains(t, outBuf.String(), "No tasks found on the board")
}

func TestTasksReport_ReadsHTMLFile(t *testing.T) {
	setupStdoutCapture(t)

	path := filepath.Join(t.TempDir(), "board.html")
	require.NoError(t, os.WriteFile(path, []byte("<html>board</html>"), 0o600))

	var got string
	c := TasksCmd{reporter: &FakeTaskReporter{
		ReportFunc: func(ctx context.Context) (string, error) {
			t.Fatal("browser must not be used with --html")
			return "", nil
		},
		ReportFromHTMLFunc: func(ctx context.Context, r io.Reader) (string, error) {
			data, err := io.ReadAll(r)
			got = string(data)
			return sampleReport, err
		},
	}}
	require.NoError(t, c.Report(context.Background(), TasksReportInput{HTMLFile: path, NoCopy: true}))
	assert.Equal(t, "<html>board</html>", got)
}

func TestTasksReport_MissingHTMLFile(t *testing.T) {
	c := TasksCmd{reporter: &FakeTaskReporter{}}
	err := c.Report(context.Background(), TasksReportInput{HTMLFile: filepath.Join(t.TempDir(), "missing.html")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}
