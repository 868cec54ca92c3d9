package news

import (
	"strings"

	"golang.org/x/net/html"
)

// flattenHTML reduces a headline fragment to plain text with collapsed
// whitespace. Provider headlines occasionally carry entity escapes or stray
// markup, and the digest must read as prose.
func flattenHTML(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}

	var extract func(*html.Node) string
	extract = func(n *html.Node) string {
		if n.Type == html.TextNode {
			return n.Data
		}
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			sb.WriteString(extract(c))
		}
		return sb.String()
	}

	return strings.Join(strings.Fields(extract(doc)), " ")
}
