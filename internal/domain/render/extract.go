package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Link is an anchor found in a sanitized body
type Link struct {
	Href string `json:"href"`
	Text string `json:"text,omitempty"`
}

// extract pulls the visible text and the distinct links out of html.
// Fragment-only and empty hrefs are skipped.
func extract(html string) (string, []Link) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nil
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")

	var links []Link
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || seen[href] {
			return
		}
		seen[href] = true
		links = append(links, Link{
			Href: href,
			Text: strings.Join(strings.Fields(s.Text()), " "),
		})
	})
	return text, links
}
