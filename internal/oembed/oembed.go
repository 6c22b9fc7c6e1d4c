// Package oembed fetches optional oEmbed metadata for recognized videos.
// Enrichment is best effort: a failure here never changes the
// VideoReference it was asked about.
package oembed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vembed/internal/httputil"
	"vembed/internal/media"
)

// ErrUnavailable is returned for platforms without a usable oEmbed endpoint.
var ErrUnavailable = errors.New("oEmbed unavailable")

// TikTokEndpoint is TikTok's public oEmbed endpoint.
const TikTokEndpoint = "https://www.tiktok.com/oembed"

// Fetcher retrieves oEmbed data for a reference.
type Fetcher interface {
	Fetch(ctx context.Context, ref media.VideoReference) (*media.OEmbed, error)
}

// Client talks to platform oEmbed endpoints.
type Client struct {
	client *http.Client
	tiktok string
}

// NewClient creates an oEmbed client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		client: httputil.NewClient(timeout),
		tiktok: TikTokEndpoint,
	}
}

// Fetch retrieves and sanitizes oEmbed data for ref.
//
// Instagram requires a Facebook app access token and YouTube needs no
// enrichment for iframe embeds, so both report ErrUnavailable.
func (c *Client) Fetch(ctx context.Context, ref media.VideoReference) (*media.OEmbed, error) {
	switch ref.Platform {
	case media.TikTok:
		return c.fetchJSON(ctx, httputil.WithQuery(c.tiktok, url.Values{"url": {absoluteURL(ref.SourceURL)}}))
	case media.Instagram, media.YouTube:
		return nil, fmt.Errorf("%w for %s", ErrUnavailable, ref.Platform)
	default:
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, media.ErrUnsupportedPlatform)
	}
}

// absoluteURL gives schemeless sources such as vm.tiktok.com/ZM... an
// https scheme for the endpoint's url parameter.
func absoluteURL(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}

func (c *Client) fetchJSON(ctx context.Context, endpoint string) (*media.OEmbed, error) {
	body, err := httputil.GetJSON(ctx, c.client, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching oEmbed: %w", err)
	}

	var data media.OEmbed
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decoding oEmbed: %w", err)
	}
	if data == (media.OEmbed{}) {
		return nil, fmt.Errorf("decoding oEmbed: empty response")
	}

	if data.HTML != "" {
		safe, err := SanitizeHTML(data.HTML)
		if err != nil {
			return nil, fmt.Errorf("sanitizing oEmbed html: %w", err)
		}
		data.HTML = safe
	}

	return &data, nil
}
