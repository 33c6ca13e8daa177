// Package magazine turns an editor-curated page layout into the final merged
// magazine PDF: token-substituted HTML per page, headless rendering to PDF,
// integrity checks and an ordered merge.
package magazine

import (
	"strings"
)

// Item is one news entry placed on a magazine page. Image is a pre-resolved
// source (URL or data URI); Reference is the optional citation line.
type Item struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Image     string `json:"image"`
	Reference string `json:"reference"`
}

// Page is one logical magazine page. The first page carries the issue
// metadata; later pages carry a page number and an optional section title,
// which alone decides between the titled and untitled layout.
type Page struct {
	IssueNumber  string `json:"issueNumber"`
	IssueDate    string `json:"issueDate"`
	SectionTitle string `json:"sectionTitle"`
	PageNumber   string `json:"pageNumber"`
	News         []Item `json:"news"`
}

// substitute replaces the first occurrence of each {{token}} with its value.
// Absent values become "", never a textual null.
func substitute(html string, pairs map[string]string) string {
	for token, value := range pairs {
		html = strings.Replace(html, token, value, 1)
	}
	return html
}

// renderItems expands the per-item fragment for every entry on the page.
// Under the titled layout an entry without a title drops the title div
// entirely instead of leaving an empty heading.
func renderItems(items []Item, dropEmptyTitle bool) string {
	var b strings.Builder
	for _, item := range items {
		fragment := newsItemFragment
		if dropEmptyTitle && strings.TrimSpace(item.Title) == "" {
			fragment = strings.Replace(fragment,
				`        <div class="news-title">{{NEWS_TITLE}}</div>`+"\n", "", 1)
		}
		alt := item.Title
		if alt == "" {
			alt = "News image"
		}
		b.WriteString(substitute(fragment, map[string]string{
			"{{NEWS_TITLE}}":       item.Title,
			"{{NEWS_IMAGE_SRC}}":   item.Image,
			"{{NEWS_IMAGE_ALT}}":   alt,
			"{{NEWS_DESCRIPTION}}": item.Content,
			"{{NEWS_REF}}":         item.Reference,
		}))
	}
	return b.String()
}

// ComposeMainPage renders the masthead page with the issue summary line.
func ComposeMainPage(page Page, logoSrc, issueSummary string) string {
	html := substitute(mainTemplate, map[string]string{
		"{{ISSUE_NUMBER}}":  page.IssueNumber,
		"{{ISSUE_DATE}}":    page.IssueDate,
		"{{LOGO_SRC}}":      logoSrc,
		"{{ISSUE_SUMMARY}}": issueSummary,
	})
	return strings.Replace(html, "{{NEWS_ITEMS}}", renderItems(page.News, false), 1)
}

// ComposeFurtherPage renders a page after the first. The layout follows the
// section title: present and non-empty selects the titled template.
func ComposeFurtherPage(page Page) string {
	template := noTitleTemplate
	hasSectionTitle := strings.TrimSpace(page.SectionTitle) != ""
	if hasSectionTitle {
		template = furtherTemplate
	}

	pairs := map[string]string{
		"{{PAGE_NUMBER}}": page.PageNumber,
	}
	if hasSectionTitle {
		pairs["{{SECTION_TITLE}}"] = page.SectionTitle
	}
	html := substitute(template, pairs)
	return strings.Replace(html, "{{NEWS_ITEMS}}", renderItems(page.News, hasSectionTitle), 1)
}

// ComposeFurtherPages concatenates every page after the first into one HTML
// document stream, one print page each.
func ComposeFurtherPages(pages []Page) string {
	var b strings.Builder
	for _, page := range pages {
		b.WriteString(ComposeFurtherPage(page))
	}
	return b.String()
}
