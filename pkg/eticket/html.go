package eticket

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockElements = "p, div, tr, li, table, h1, h2, h3, h4, h5, h6"

// PreformattedText returns the text of every <pre> block in html, joined by
// newlines. The second result is false when there is none.
func PreformattedText(html string) (string, bool) {
	if strings.TrimSpace(html) == "" {
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	var blocks []string
	doc.Find("pre").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return "", false
	}
	return strings.Join(blocks, "\n"), true
}

// HTMLToText flattens html into plain lines, breaking at <br> and block
// elements and separating table cells with a space.
func HTMLToText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("td, th").AppendHtml(" ")
	doc.Find(blockElements).AppendHtml("\n")

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// documentText is the text fields are extracted from: the plain text, or the
// flattened HTML when no plain text was supplied.
func documentText(raw RawInput) string {
	if strings.TrimSpace(raw.PlainText) != "" {
		return raw.PlainText
	}
	return HTMLToText(raw.HTMLText)
}

// detectionText joins every rendition so cues found only in the HTML still count.
func detectionText(raw RawInput) string {
	if raw.HTMLText == "" {
		return raw.PlainText
	}
	return raw.PlainText + "\n" + HTMLToText(raw.HTMLText)
}
