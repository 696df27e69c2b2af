package grantsgov

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// Fallbacks for listing fields missing from the page.
const (
	unknownTitle        = "Unknown Title"
	unknownOrganization = "Unknown Organization"
	unknownDeadline     = "Unknown Deadline"
)

// Parse extracts opportunities from a listing page. Each div.opportunity-item
// yields one record; limit caps the count when positive.
func Parse(r io.Reader, limit int) ([]domain.OpportunityRecord, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	records := []domain.OpportunityRecord{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if limit > 0 && len(records) >= limit {
			return
		}
		if isElement(n, "div") && hasClass(n, "opportunity-item") {
			records = append(records, parseItem(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return records, nil
}

func parseItem(item *html.Node) domain.OpportunityRecord {
	titleNode := find(item, func(n *html.Node) bool { return isElement(n, "h3") })
	if titleNode == nil {
		titleNode = find(item, func(n *html.Node) bool { return isElement(n, "a") })
	}

	rec := domain.OpportunityRecord{
		Title:        textOr(titleNode, unknownTitle),
		Organization: textOr(findClass(item, "span", "agency"), unknownOrganization),
		Deadline:     textOr(findClass(item, "span", "deadline"), unknownDeadline),
		Amount:       textOr(findClass(item, "span", "amount"), domain.NotSpecified),
		Description:  textOr(findClass(item, "p", "description"), ""),
		Source:       Name,
	}

	if link := find(item, func(n *html.Node) bool { return isElement(n, "a") }); link != nil {
		rec.URL = attr(link, "href")
	}
	return rec
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// find returns the first descendant of n matching pred, depth first.
func find(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if pred(c) {
			return c
		}
		if found := find(c, pred); found != nil {
			return found
		}
	}
	return nil
}

func findClass(n *html.Node, tag, class string) *html.Node {
	return find(n, func(c *html.Node) bool { return isElement(c, tag) && hasClass(c, class) })
}

func textOr(n *html.Node, fallback string) string {
	if n == nil {
		return fallback
	}
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
