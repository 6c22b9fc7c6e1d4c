// Package provider recognizes video URLs for each supported platform.
// Each provider owns an ordered list of URL rules; the first rule that
// matches supplies the video identifier.
package provider

import (
	"fmt"
	"regexp"

	"vembed/internal/media"
)

// Provider extracts video references for a single platform.
type Provider interface {
	// Platform returns the platform this provider handles.
	Platform() media.Platform

	// Extract pulls the video identifier out of a sanitized URL and builds
	// the canonical embed URL. It returns media.ErrNoIdentifierFound when
	// no rule matches.
	Extract(url string) (media.VideoReference, error)

	// Shapes describes the accepted URL forms, in rule order.
	Shapes() []string
}

// providers is ordered the same way as detection rules.
var providers = []Provider{
	&YouTube{},
	&Instagram{},
	&TikTok{},
}

// All returns every provider in detection order.
func All() []Provider {
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// For returns the provider for a platform.
func For(p media.Platform) (Provider, error) {
	for _, prov := range providers {
		if prov.Platform() == p {
			return prov, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", media.ErrUnsupportedPlatform, p)
}

// rule is one URL form a platform accepts. pattern must have exactly one
// capture group holding the video identifier.
type rule struct {
	shape   string
	pattern *regexp.Regexp
}

// firstMatch evaluates rules in order and returns the identifier captured
// by the first one that matches.
func firstMatch(rules []rule, s string) (string, bool) {
	for _, r := range rules {
		if m := r.pattern.FindStringSubmatch(s); m != nil && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}

func shapes(rules []rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.shape
	}
	return out
}

// reference builds a VideoReference after re-checking the identifier shape,
// so a reference is never handed out with an identifier IsValidID rejects.
func reference(p media.Platform, id, embedURL, source string) (media.VideoReference, error) {
	if !IsValidID(id, p) {
		return media.VideoReference{}, fmt.Errorf("%w: %q is not a valid %s identifier", media.ErrNoIdentifierFound, id, p)
	}
	return media.VideoReference{
		Platform:  p,
		VideoID:   id,
		EmbedURL:  embedURL,
		SourceURL: source,
	}, nil
}

func noIdentifier(p media.Platform, url string) error {
	return fmt.Errorf("%w in %s URL %q", media.ErrNoIdentifierFound, p, url)
}
