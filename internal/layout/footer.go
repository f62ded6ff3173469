// Package layout assembles the template data of the theme's page regions.
package layout

import (
	"fmt"
	"regexp"
	"strings"

	"lms-theme-renderer/internal/settings"
)

const footerColumnCount = 4

var blankFooterText = regexp.MustCompile(`\s|&nbsp;|</?p>`)

// Link is a label and target pair.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type FooterColumn struct {
	Text         string `json:"text"`
	ClassText    string `json:"classText"`
	Heading      string `json:"heading,omitempty"`
	ClassHeading string `json:"classHeading,omitempty"`
	List         []Link `json:"list"`
}

type Footer struct {
	Columns   []FooterColumn `json:"columns"`
	GridCount int            `json:"gridCount"`
}

// FooterColumns builds up to four footer columns from footertextN/footerheadingN.
// A column whose text is only whitespace, &nbsp; or empty paragraphs is dropped.
func FooterColumns(s settings.Settings, lang string) Footer {
	footer := Footer{Columns: []FooterColumn{}}
	for i := 1; i <= footerColumnCount; i++ {
		textKey := fmt.Sprintf("footertext%d", i)
		headingKey := fmt.Sprintf("footerheading%d", i)

		raw := s.Get(textKey)
		if raw == "" || blankFooterText.ReplaceAllString(raw, "") == "" {
			continue
		}

		col := FooterColumn{
			Text:      settings.FormatValue(raw, settings.FormatHTML),
			ClassText: textKey,
			List:      topLevelMenuLinks(raw, lang),
		}
		if heading := s.Get(headingKey); heading != "" {
			col.Heading = settings.FormatValue(heading, settings.FormatHTML)
			col.ClassHeading = headingKey
		}
		footer.Columns = append(footer.Columns, col)
	}

	footer.GridCount = 12
	if n := len(footer.Columns); n > 0 {
		footer.GridCount = 12 / n
	}
	return footer
}

// topLevelMenuLinks parses custom menu lines ("text|url|title|langs", a leading
// "-" per nesting level) and returns the top-level entries for lang.
func topLevelMenuLinks(raw, lang string) []Link {
	links := []Link{}
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		parts := strings.Split(line, "|")
		text := strings.TrimSpace(parts[0])
		if text == "" {
			continue
		}
		if len(parts) > 3 && !matchesLanguage(parts[3], lang) {
			continue
		}
		link := Link{Text: settings.FormatValue(text, settings.FormatString)}
		if len(parts) > 1 {
			link.URL = strings.TrimSpace(parts[1])
		}
		links = append(links, link)
	}
	return links
}

func matchesLanguage(langs, lang string) bool {
	langs = strings.TrimSpace(langs)
	if langs == "" || lang == "" {
		return true
	}
	for _, l := range strings.Split(langs, ",") {
		if strings.EqualFold(strings.TrimSpace(l), lang) {
			return true
		}
	}
	return false
}
