package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/kernel/devpanel/internal/flow"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// TaskReporter builds translation request reports from a Crowdin task board.
type TaskReporter interface {
	Report(ctx context.Context) (string, error)
	ReportFromHTML(ctx context.Context, r io.Reader) (string, error)
}

// TasksCmd handles task board reports with injectable dependencies.
type TasksCmd struct {
	reporter TaskReporter
}

type TasksReportInput struct {
	// HTMLFile reads a saved board instead of the active page.
	HTMLFile string
	NoCopy   bool
}

var reportFrame = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1)

func (c TasksCmd) Report(ctx context.Context, in TasksReportInput) error {
	var (
		report string
		err    error
	)
	if in.HTMLFile != "" {
		f, openErr := os.Open(in.HTMLFile)
		if openErr != nil {
			return fmt.Errorf("failed to open %s: %w", in.HTMLFile, openErr)
		}
		defer f.Close()
		report, err = c.reporter.ReportFromHTML(ctx, f)
	} else {
		report, err = c.reporter.Report(ctx)
	}
	if err != nil {
		return err
	}

	if report == "" {
		pterm.Warning.Println("No tasks found on the board")
		return nil
	}
	pterm.Println(reportFrame.Render(report))
	return nil
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Work with Crowdin task boards",
}

var tasksReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Copy a translation request report for the task board in the active page",
	Long: `Scrape the Crowdin task board open in the active page, group its task links by
task name and copy the report to the clipboard:

  Please help translate: <task name>
  :<language code>: <task url>`,
	Example: "  devpanel tasks report\n  devpanel tasks report --html board.html --no-copy",
	Args:    cobra.NoArgs,
	RunE:    runTasksReport,
}

func init() {
	tasksCmd.AddCommand(tasksReportCmd)

	tasksReportCmd.Flags().String("html", "", "Read the board from a saved HTML file instead of the browser")
	tasksReportCmd.Flags().Bool("no-copy", false, "Print the report without touching the clipboard")
}

func runTasksReport(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	defer a.Close()

	htmlFile, _ := cmd.Flags().GetString("html")
	noCopy, _ := cmd.Flags().GetBool("no-copy")

	renderer, err := a.renderer()
	if err != nil {
		return err
	}
	p := oneShotPresenter()
	defer p.Close()

	tasks := &flow.Tasks{Renderer: renderer, Presenter: p, NoCopy: noCopy}
	if htmlFile == "" {
		platform, err := a.Platform(cmd.Context())
		if err != nil {
			return err
		}
		tasks.Platform = platform
	}

	c := TasksCmd{reporter: tasks}
	return c.Report(cmd.Context(), TasksReportInput{HTMLFile: htmlFile, NoCopy: noCopy})
}
