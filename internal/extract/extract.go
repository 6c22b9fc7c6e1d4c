// Package extract turns user-supplied video URLs into VideoReferences.
// It sanitizes the input, picks a platform (detected or hinted) and hands
// the URL to that platform's provider.
package extract

import (
	"fmt"

	"vembed/internal/httputil"
	"vembed/internal/media"
	"vembed/internal/provider"
)

// Parse recognizes a video URL. A hint of media.Unknown means auto-detect;
// any other hint is trusted without checking the host, so a mismatched
// hint surfaces as media.ErrNoIdentifierFound.
//
// Parse is pure: it performs no I/O and is safe for concurrent use.
func Parse(raw string, hint media.Platform) (media.VideoReference, error) {
	url := httputil.SanitizeURL(raw)
	if url == "" {
		return media.VideoReference{}, media.ErrEmptyInput
	}

	platform := hint
	if platform == media.Unknown {
		detected, ok := provider.Detect(url)
		if !ok {
			return media.VideoReference{}, fmt.Errorf("%w: %q", media.ErrUnsupportedPlatform, url)
		}
		platform = detected
	}

	p, err := provider.For(platform)
	if err != nil {
		return media.VideoReference{}, err
	}

	return p.Extract(url)
}

// Result pairs an input with its parse outcome.
type Result struct {
	Input string
	Ref   media.VideoReference
	Err   error
}

// ParseAll parses each input with the same hint. Results keep input order.
func ParseAll(inputs []string, hint media.Platform) []Result {
	results := make([]Result, len(inputs))
	for i, in := range inputs {
		ref, err := Parse(in, hint)
		results[i] = Result{Input: in, Ref: ref, Err: err}
	}
	return results
}
