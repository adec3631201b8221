package crowdin

import (
	"strings"
)

// Task board selectors.
const (
	CardSelector      = ".tasks-board__card"
	LinkSelector      = ".project-task-link"
	NameSelector      = ".semibold"
	LanguageAttribute = "data-language-id"
)

// Record is one task link found on one language card.
type Record struct {
	LanguageID string `json:"languageId"`
	TaskName   string `json:"taskName"`
	URL        string `json:"url"`
}

// Scrape returns one Record per (card, link) pair in document order. Links
// without an href or a name label are skipped. A board with no cards yields
// an empty slice.
func Scrape(doc Document) []Record {
	records := []Record{}
	for _, card := range doc.Find(CardSelector) {
		languageID, _ := card.Attr(LanguageAttribute)
		for _, link := range card.Find(LinkSelector) {
			href, ok := link.Attr("href")
			if !ok || href == "" {
				continue
			}
			labels := link.Find(NameSelector)
			if len(labels) == 0 {
				continue
			}
			records = append(records, Record{
				LanguageID: languageID,
				TaskName:   strings.TrimSpace(labels[0].Text()),
				URL:        href,
			})
		}
	}
	return records
}
