package provider

import (
	"regexp"

	"vembed/internal/httputil"
	"vembed/internal/media"
)

// hostRules map a host pattern to its platform. First match wins.
var hostRules = []struct {
	pattern  *regexp.Regexp
	platform media.Platform
}{
	{regexp.MustCompile(`(?i)(?:youtube\.com|youtu\.be)`), media.YouTube},
	{regexp.MustCompile(`(?i)instagram\.com`), media.Instagram},
	{regexp.MustCompile(`(?i)(?:tiktok\.com|vm\.tiktok\.com)`), media.TikTok},
}

// Detect classifies a sanitized URL by its host. It returns false when the
// URL has no parseable host or the host belongs to no supported platform.
func Detect(url string) (media.Platform, bool) {
	host, ok := httputil.Host(url)
	if !ok {
		return media.Unknown, false
	}

	for _, r := range hostRules {
		if r.pattern.MatchString(host) {
			return r.platform, true
		}
	}
	return media.Unknown, false
}
