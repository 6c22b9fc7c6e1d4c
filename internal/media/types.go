// Package media defines shared types for the vembed application.
package media

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Platform identifies a supported vertical video host.
type Platform int

const (
	// Unknown is the zero value. As a parse hint it means "auto-detect".
	Unknown Platform = iota
	YouTube
	Instagram
	TikTok
)

// Platforms lists the supported platforms in detection order.
var Platforms = []Platform{YouTube, Instagram, TikTok}

func (p Platform) String() string {
	switch p {
	case YouTube:
		return "youtube"
	case Instagram:
		return "instagram"
	case TikTok:
		return "tiktok"
	default:
		return "unknown"
	}
}

// DisplayName returns the label shown to editors.
func (p Platform) DisplayName() string {
	switch p {
	case YouTube:
		return "YouTube Shorts"
	case Instagram:
		return "Instagram Reels"
	case TikTok:
		return "TikTok"
	default:
		return "Auto Detect"
	}
}

// MarshalText encodes the platform as its lower-case name.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a platform name.
func (p *Platform) UnmarshalText(text []byte) error {
	v, err := ParsePlatform(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePlatform converts a platform name into a Platform.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "youtube":
		return YouTube, nil
	case "instagram":
		return Instagram, nil
	case "tiktok":
		return TikTok, nil
	default:
		return Unknown, fmt.Errorf("unsupported platform %q (valid: youtube, instagram, tiktok)", s)
	}
}

// ParseHint is like ParsePlatform but also accepts "auto" (or an empty
// string), which maps to Unknown.
func ParseHint(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Unknown, nil
	}
	p, err := ParsePlatform(s)
	if err != nil {
		return Unknown, fmt.Errorf("unsupported platform hint %q (valid: auto, youtube, instagram, tiktok)", s)
	}
	return p, nil
}

// VideoReference is the result of recognizing a video URL.
// A VideoReference is always fully populated; partial values are never returned.
type VideoReference struct {
	Platform  Platform `json:"platform"`
	VideoID   string   `json:"video_id"`
	EmbedURL  string   `json:"embed_url"`  // Canonical iframe URL
	SourceURL string   `json:"source_url"` // Trimmed, sanitized input
}

// ElementID returns a DOM-safe identifier derived from the platform and
// video ID. Equal references always produce the same identifier.
func (v VideoReference) ElementID() string {
	sum := sha256.Sum256([]byte(v.Platform.String() + ":" + v.VideoID))
	return "vembed-" + v.Platform.String() + "-" + hex.EncodeToString(sum[:4])
}

// OEmbed holds the subset of an oEmbed response vembed uses.
type OEmbed struct {
	Version         string    `json:"version,omitempty"`
	Type            string    `json:"type,omitempty"`
	Title           string    `json:"title,omitempty"`
	AuthorName      string    `json:"author_name,omitempty"`
	AuthorURL       string    `json:"author_url,omitempty"`
	ProviderName    string    `json:"provider_name,omitempty"`
	ProviderURL     string    `json:"provider_url,omitempty"`
	HTML            string    `json:"html,omitempty"`
	Width           Dimension `json:"width,omitempty"`
	Height          Dimension `json:"height,omitempty"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	ThumbnailWidth  int       `json:"thumbnail_width,omitempty"`
	ThumbnailHeight int       `json:"thumbnail_height,omitempty"`
}

// Dimension is an oEmbed width or height. Providers send either a number
// or a string such as "100%".
type Dimension string

// UnmarshalJSON accepts JSON numbers, strings and null.
func (d *Dimension) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*d = ""
	case strings.HasPrefix(s, `"`):
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*d = Dimension(v)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("oEmbed dimension %s: %w", s, err)
		}
		*d = Dimension(n.String())
	}
	return nil
}
