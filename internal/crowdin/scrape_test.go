package crowdin

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadBoard(t *testing.T) *HTMLDocument {
	t.Helper()
	f, err := os.Open("testdata/board.html")
	require.NoError(t, err)
	defer f.Close()

	doc, err := NewHTMLDocument(f)
	require.NoError(t, err)
	return doc
}

func TestScrapeBoard(t *testing.T) {
	records := Scrape(loadBoard(t))

	assert.Equal(t, []Record{
		{LanguageID: "41", TaskName: "Login Page", URL: "/project/app/tasks/101"},
		{LanguageID: "41", TaskName: "Footer", URL: "/project/app/tasks/102"},
		{LanguageID: "63", TaskName: "Login Page", URL: "/project/app/tasks/201"},
		{LanguageID: "999", TaskName: "Footer", URL: "/project/app/tasks/301"},
	}, records)
}

func TestScrapeEmptyPage(t *testing.T) {
	doc, err := NewHTMLDocument(strings.NewReader("<html><body><p>nothing here</p></body></html>"))
	require.NoError(t, err)

	records := Scrape(doc)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestScrapeCardWithoutLanguage(t *testing.T) {
	html := `<div class="tasks-board__card"><a class="project-task-link" href="/t/9"><b class="semibold">Header</b></a></div>`
	doc, err := NewHTMLDocument(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, []Record{{LanguageID: "", TaskName: "Header", URL: "/t/9"}}, Scrape(doc))
}
