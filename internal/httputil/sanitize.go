package httputil

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// unsafeURLChars matches anything outside the set of characters a raw URL may carry.
	// Non-ASCII runes are kept; they are percent-encoded by whoever prints the URL.
	unsafeURLChars = regexp.MustCompile(`[^a-zA-Z0-9\-~+_.?#=!&;,/:%@$|*'()\[\]\x{80}-\x{10FFFF}]`)

	// encodedNewline matches percent-encoded CR and LF.
	encodedNewline = regexp.MustCompile(`(?i)%0[ad]`)

	// schemePattern matches a leading URL scheme.
	schemePattern = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+\-]*):`)
)

// allowedSchemes are the URL schemes SanitizeURL lets through.
var allowedSchemes = map[string]bool{
	"http": true, "https": true, "ftp": true, "ftps": true, "mailto": true,
	"news": true, "irc": true, "irc6": true, "ircs": true, "gopher": true,
	"nntp": true, "feed": true, "telnet": true, "mms": true, "rtsp": true,
	"sms": true, "svn": true, "tel": true, "fax": true, "xmpp": true,
	"webcal": true, "urn": true,
}

// SanitizeURL normalizes user-supplied URL text for storage and matching.
// Whitespace is trimmed, spaces are encoded, control and unsafe characters
// are dropped, and URLs with a disallowed scheme (javascript:, data:, ...)
// collapse to the empty string. Input without a scheme is left schemeless.
func SanitizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, " ", "%20")
	s = unsafeURLChars.ReplaceAllString(s, "")

	// Strip repeatedly so "%0%0ad" cannot reassemble into "%0a".
	for encodedNewline.MatchString(s) {
		s = encodedNewline.ReplaceAllString(s, "")
	}

	if m := schemePattern.FindStringSubmatch(s); m != nil {
		if !allowedSchemes[strings.ToLower(m[1])] {
			return ""
		}
	}

	return s
}

// Host returns the lower-cased host of a URL. Schemeless input such as
// "youtu.be/abc" is read as if it were https. The second return value is
// false when no host can be parsed.
func Host(raw string) (string, bool) {
	s := raw
	if !strings.Contains(s, "://") && !strings.HasPrefix(s, "//") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	return host, host != ""
}

// ValidateURL checks that a URL is well-formed and uses HTTPS.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("only HTTPS URLs are allowed, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// WithQuery appends an encoded query string to base.
func WithQuery(base string, params url.Values) string {
	if len(params) == 0 {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + params.Encode()
}
