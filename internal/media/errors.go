package media

import "errors"

// Recognition failures. All are expected conditions; callers compare with
// errors.Is and decide how to present them.
var (
	// ErrEmptyInput is returned when the sanitized URL is empty.
	ErrEmptyInput = errors.New("empty video URL")

	// ErrUnsupportedPlatform is returned when auto-detection finds no known host.
	ErrUnsupportedPlatform = errors.New("unsupported video platform")

	// ErrNoIdentifierFound is returned when the platform is known but no
	// extraction pattern matches the URL.
	ErrNoIdentifierFound = errors.New("no video identifier found")
)
