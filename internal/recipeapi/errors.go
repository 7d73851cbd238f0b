package recipeapi

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// errorMessage extracts a human message from an error body. It tries the
// JSON {"error": "..."} envelope first, then the text of an HTML error
// page (framework 4xx/5xx pages, rate limiter responses). It returns ""
// when nothing usable is found; ServerError then falls back to the
// status text.
func errorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	if trimmed[0] == '{' {
		var eb errorBody
		if err := json.Unmarshal(trimmed, &eb); err == nil {
			return strings.TrimSpace(eb.Error)
		}
	}

	if trimmed[0] == '<' {
		return htmlMessage(trimmed)
	}

	return truncate(string(trimmed), 200)
}

// htmlMessage joins the first heading and paragraph of an HTML error
// page, falling back to its title.
func htmlMessage(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	var parts []string
	for _, sel := range []string{"h1", "p"} {
		if t := strings.TrimSpace(doc.Find(sel).First().Text()); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
			parts = append(parts, t)
		}
	}
	return truncate(strings.Join(parts, ": "), 200)
}

// truncate shortens s to at most n runes, ending in "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}
