package view

import (
	"fmt"
	"strings"

	"thurianx/internal/domain/entity"
	"thurianx/internal/i18n"
)

// Sponsor logos shown in the footer.
var Sponsors = []Sponsor{
	{Name: "IT KMITL", Logo: "/static/it-kmitl.webp"},
	{Name: "Bangkok Airways", Logo: "/static/bangkok.webp"},
}

// Page is the visual tree of the capture-and-classify view.
type Page struct {
	Lang        entity.Language `json:"lang"`
	Phase       entity.Phase    `json:"phase"`
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle"`
	Support     string          `json:"support"`
	ToggleLabel string          `json:"toggle_label"`
	CameraLabel string          `json:"camera_label"`
	UploadLabel string          `json:"upload_label"`

	PreviewURL string `json:"preview_url,omitempty"`

	CanSubmit   bool   `json:"can_submit"`
	SubmitLabel string `json:"submit_label"`

	Processing     bool   `json:"processing"`
	ProcessingText string `json:"processing_text,omitempty"`

	ShowResult  bool   `json:"show_result"`
	ResultLabel string `json:"result_label"`
	Result      string `json:"result,omitempty"`

	HistoryTitle string        `json:"history_title"`
	History      []HistoryItem `json:"history,omitempty"`

	Footer Footer `json:"footer"`
}

// HistoryItem is one numbered row of the history list.
type HistoryItem struct {
	Position int    `json:"position"`
	Outcome  string `json:"outcome"`
}

type Footer struct {
	Sponsors  []Sponsor `json:"sponsors"`
	Copyright string    `json:"copyright"`
}

type Sponsor struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// PreviewPath is the URL a preview is served under.
func PreviewPath(previewID string) string {
	return "/previews/" + previewID
}

// Build renders the session with the given string tables. It has no side
// effects.
func Build(s entity.Session, catalog *i18n.Catalog) Page {
	t := catalog.For(s.Language)

	p := Page{
		Lang:         s.Language,
		Phase:        s.Phase(),
		Title:        t.Title,
		Subtitle:     t.Subtitle,
		Support:      t.Support,
		ToggleLabel:  t.Toggle,
		CameraLabel:  t.Camera,
		UploadLabel:  t.Upload,
		CanSubmit:    s.CanSubmit(),
		SubmitLabel:  t.Analyze,
		Processing:   s.Processing,
		ShowResult:   s.ShowsResult(),
		ResultLabel:  t.Result,
		HistoryTitle: t.History,
		Footer: Footer{
			Sponsors:  Sponsors,
			Copyright: t.Footer,
		},
	}

	if s.Preview != nil {
		p.PreviewURL = PreviewPath(s.Preview.ID)
	}
	if s.Processing {
		p.SubmitLabel = t.Processing
		p.ProcessingText = t.Processing
	}
	if p.ShowResult {
		p.Result = s.Result.String()
	}
	for i, o := range s.History {
		p.History = append(p.History, HistoryItem{Position: i + 1, Outcome: o.String()})
	}
	return p
}

// ResultLine formats "label: outcome", or "" when no result is shown.
func (p Page) ResultLine() string {
	if !p.ShowResult {
		return ""
	}
	return fmt.Sprintf("%s: %s", p.ResultLabel, p.Result)
}

// HistoryText formats the history list as numbered lines.
func (p Page) HistoryText() string {
	if len(p.History) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(p.HistoryTitle)
	for _, h := range p.History {
		fmt.Fprintf(&b, "\n%d. %s", h.Position, h.Outcome)
	}
	return b.String()
}

// Text renders the page as plain text for chat front-ends.
func Text(p Page) string {
	var parts []string
	if p.Processing {
		parts = append(parts, "⏳ "+p.ProcessingText)
	}
	if line := p.ResultLine(); line != "" {
		parts = append(parts, line)
	}
	if h := p.HistoryText(); h != "" {
		parts = append(parts, h)
	}
	return strings.Join(parts, "\n\n")
}
