package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vembed/internal/cache"
	"vembed/internal/extract"
	"vembed/internal/httputil"
	"vembed/internal/media"
	"vembed/internal/oembed"
	"vembed/internal/ui"
)

var flagNoCache bool

var oembedCmd = &cobra.Command{
	Use:   "oembed <url>",
	Short: "Fetch oEmbed metadata and embed HTML for a video",
	Long: `Recognize a video URL and fetch its oEmbed metadata. TikTok supports
oEmbed; Instagram needs an app access token and YouTube is embedded directly,
so both fall back to the iframe embed URL. Responses are cached locally.`,
	Args: cobra.ExactArgs(1),
	RunE: oembedRun,
}

func init() {
	oembedCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the local oEmbed cache")
}

func oembedRun(cmd *cobra.Command, args []string) error {
	if !cfg.OEmbed.Enabled {
		return fmt.Errorf("oEmbed enrichment is disabled in %s", configPathOrDefault())
	}

	ref, err := extract.Parse(args[0], cfg.Hint())
	if err != nil {
		return fmt.Errorf("%s: %w", describe(err), err)
	}
	saveReference(ref)

	var store oembed.Store
	if cfg.Cache.Enabled && !flagNoCache {
		c, err := openCache()
		if err != nil {
			// Enrichment still works without a cache.
			debugf("cache unavailable: %v", err)
		} else {
			defer c.Close()
			store = c
		}
	}

	svc := oembed.NewService(oembed.NewClient(cfg.Timeout()), store, cfg.TTL())

	start := time.Now()
	data, err := svc.Lookup(cmd.Context(), ref)
	debugf("oembed lookup for %s took %s", ref.SourceURL, time.Since(start))

	if err != nil && !errors.Is(err, oembed.ErrUnavailable) {
		// Enrichment is best effort; report and fall back to the iframe.
		debugf("oembed fetch failed: %v", err)
	}

	if cfg.JSON() {
		out := struct {
			media.VideoReference
			OEmbed *media.OEmbed `json:"oembed,omitempty"`
			Note   string        `json:"note,omitempty"`
		}{VideoReference: ref, OEmbed: data}
		if err != nil {
			out.Note = fetchNote(ref.Platform, err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	p := ui.NewPrinter(os.Stdout)
	printReference(p, ref)
	p.Blank()

	if data == nil {
		p.Note(fetchNote(ref.Platform, err))
		p.Line(ref.EmbedURL)
		return nil
	}

	if data.Title != "" {
		p.Field("title", data.Title)
	}
	if data.AuthorName != "" {
		p.Field("author", data.AuthorName)
	}
	if data.ThumbnailURL != "" {
		p.Field("thumbnail", data.ThumbnailURL)
	}
	if data.HTML != "" {
		p.Blank()
		p.Line(data.HTML)
	}
	return nil
}

// fetchNote explains a failed enrichment; the iframe URL is always usable.
func fetchNote(platform media.Platform, err error) string {
	var status *httputil.StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, oembed.ErrUnavailable):
		return fmt.Sprintf("oEmbed is not available for %s; use the iframe embed URL.", platform)
	case errors.As(err, &status) && (status.StatusCode == http.StatusNotFound || status.StatusCode == http.StatusGone):
		return fmt.Sprintf("%s has no such video (HTTP %d); it may be private or removed.", platform, status.StatusCode)
	case errors.As(err, &status):
		return fmt.Sprintf("%s oEmbed returned HTTP %d; use the iframe embed URL.", platform, status.StatusCode)
	default:
		return "oEmbed lookup failed; use the iframe embed URL."
	}
}

func openCache() (*cache.Cache, error) {
	path, err := cfg.CachePath()
	if err != nil {
		return nil, err
	}
	debugf("opening cache at %s", path)
	return cache.Open(path)
}
