package provider

import (
	"regexp"

	"vembed/internal/media"
)

var instagramRules = []rule{
	{"instagram.com/reel/REEL_ID", regexp.MustCompile(`(?i)instagram\.com/reels?/([a-z0-9_-]+)`)},
	{"instagram.com/p/POST_ID", regexp.MustCompile(`(?i)instagram\.com/p/([a-z0-9_-]+)`)},
}

// Instagram recognizes reel and post permalinks.
type Instagram struct{}

func (i *Instagram) Platform() media.Platform { return media.Instagram }

func (i *Instagram) Shapes() []string { return shapes(instagramRules) }

// Extract always emits the reel embed form, even for /p/ permalinks;
// the reel embed endpoint accepts post IDs.
func (i *Instagram) Extract(url string) (media.VideoReference, error) {
	id, ok := firstMatch(instagramRules, url)
	if !ok {
		return media.VideoReference{}, noIdentifier(media.Instagram, url)
	}
	return reference(media.Instagram, id, "https://www.instagram.com/reel/"+id+"/embed/", url)
}
