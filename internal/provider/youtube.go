package provider

import (
	"regexp"

	"vembed/internal/media"
)

const youtubeEmbedBase = "https://www.youtube.com/embed/"

// youtubeRules are checked in order. Path forms come before the bare-token
// fallback so that ordinary text is never mistaken for an ID.
var youtubeRules = []rule{
	{"youtube.com/shorts/VIDEO_ID", regexp.MustCompile(`(?i)youtube\.com/shorts/([a-z0-9_-]+)`)},
	// The first v= parameter wins, wherever it sits in the query.
	{"youtube.com/watch?v=VIDEO_ID", regexp.MustCompile(`(?i)youtube\.com/watch\?(?:[^#&]*&)*?v=([a-z0-9_-]+)`)},
	{"youtu.be/VIDEO_ID", regexp.MustCompile(`(?i)youtu\.be/([a-z0-9_-]+)`)},
	{"youtube.com/embed/VIDEO_ID", regexp.MustCompile(`(?i)youtube\.com/embed/([a-z0-9_-]+)`)},
	{"VIDEO_ID (11 characters)", regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`)},
}

// YouTube recognizes YouTube Shorts and regular video URLs.
type YouTube struct{}

func (y *YouTube) Platform() media.Platform { return media.YouTube }

func (y *YouTube) Shapes() []string { return shapes(youtubeRules) }

func (y *YouTube) Extract(url string) (media.VideoReference, error) {
	id, ok := firstMatch(youtubeRules, url)
	if !ok {
		return media.VideoReference{}, noIdentifier(media.YouTube, url)
	}
	return reference(media.YouTube, id, youtubeEmbedBase+id, url)
}
