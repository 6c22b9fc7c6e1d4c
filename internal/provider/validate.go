package provider

import (
	"regexp"

	"vembed/internal/media"
)

var (
	youtubeIDPattern   = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	instagramIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// Numeric video IDs and alphanumeric short codes.
	tiktokIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// IsValidID reports whether id has the shape of a video identifier on p.
// Use it for identifiers that did not come out of Extract.
func IsValidID(id string, p media.Platform) bool {
	switch p {
	case media.YouTube:
		return youtubeIDPattern.MatchString(id)
	case media.Instagram:
		return instagramIDPattern.MatchString(id)
	case media.TikTok:
		return tiktokIDPattern.MatchString(id)
	default:
		return false
	}
}
