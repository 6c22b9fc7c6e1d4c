package oembed

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// allowedTags lists the elements (and their attributes) that survive
// sanitization. This is the markup TikTok's embed blockquote needs.
var allowedTags = map[string]map[string]bool{
	"blockquote": {"class": true, "cite": true, "data-video-id": true},
	"section":    {},
	"a":          {"href": true, "target": true, "title": true},
	"p":          {},
}

// droppedTags are removed together with their content.
const droppedTags = "script, style, iframe, object, embed, noscript, template"

// SanitizeHTML reduces oEmbed markup to an allowlist of elements and
// attributes. Disallowed elements are unwrapped so their text survives;
// scripts and other active content are removed entirely.
// The remote embed script is loaded separately by the page.
func SanitizeHTML(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", err
	}

	body := doc.Find("body")
	body.Find(droppedTags).Remove()

	// Walk deepest-first so unwrapping a parent never strands a child
	// that still needs checking.
	nodes := body.Find("*")
	for i := nodes.Length() - 1; i >= 0; i-- {
		s := nodes.Eq(i)
		attrs, ok := allowedTags[goquery.NodeName(s)]
		if !ok {
			if s.Contents().Length() > 0 {
				s.Contents().Unwrap()
			} else {
				s.Remove()
			}
			continue
		}
		stripAttrs(s, attrs)
	}

	out, err := body.Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// stripAttrs removes attributes not in allowed, and hrefs that are not http(s).
func stripAttrs(s *goquery.Selection, allowed map[string]bool) {
	node := s.Get(0)
	kept := node.Attr[:0]
	for _, a := range node.Attr {
		if a.Namespace != "" || !allowed[a.Key] {
			continue
		}
		if a.Key == "href" || a.Key == "cite" {
			if !safeLink(a.Val) {
				continue
			}
		}
		kept = append(kept, html.Attribute{Key: a.Key, Val: a.Val})
	}
	node.Attr = kept
}

func safeLink(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return u.Scheme == "https" || u.Scheme == "http"
}
