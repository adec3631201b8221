package crowdin

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

const (
	// DefaultBaseURL is the origin task links are resolved against.
	DefaultBaseURL = "https://crowdin.com"

	// UnmappedLanguage is printed for language ids missing from the lookup table.
	UnmappedLanguage = "undefined"

	groupSeparator = "\n\n\n"
)

// Renderer formats grouped records as a report.
type Renderer struct {
	base      *url.URL
	languages map[string]string
}

// NewRenderer returns a Renderer resolving links against baseURL and mapping
// language ids through languages.
func NewRenderer(baseURL string, languages map[string]string) (*Renderer, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	return &Renderer{base: base, languages: languages}, nil
}

// LanguageCode maps a board language id to its short code.
func (r *Renderer) LanguageCode(languageID string) string {
	if code, ok := r.languages[languageID]; ok {
		return code
	}
	return UnmappedLanguage
}

// AbsoluteURL resolves href against the base URL.
func (r *Renderer) AbsoluteURL(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return r.base.String() + href
	}
	return r.base.ResolveReference(ref).String()
}

// Render produces the report text. No groups yields "".
func (r *Renderer) Render(groups []Group) string {
	blocks := lo.Map(groups, func(g Group, _ int) string {
		lines := make([]string, 0, len(g.Records)+1)
		lines = append(lines, "Please help translate: "+g.TaskName)
		for _, rec := range g.Records {
			lines = append(lines, fmt.Sprintf(":%s: %s", r.LanguageCode(rec.LanguageID), r.AbsoluteURL(rec.URL)))
		}
		return strings.Join(lines, "\n")
	})
	return strings.Join(blocks, groupSeparator)
}

// Report scrapes doc and renders the grouped result.
func (r *Renderer) Report(doc Document) string {
	return r.Render(GroupByName(Scrape(doc)))
}
