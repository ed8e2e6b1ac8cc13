package contentcache

import "errors"

// Sentinel errors for store operations.
var (
	// ErrInvalidArgument is returned for malformed input, such as an empty
	// content id or an empty batch.
	ErrInvalidArgument = errors.New("contentcache: invalid argument")

	// ErrDigestMismatch is returned when freshly fetched content does not
	// match the expected digest. Mismatched content is never cached.
	ErrDigestMismatch = errors.New("contentcache: digest mismatch")

	// ErrFetchFailed is returned when the remote fetch fails or no
	// fetcher is configured.
	ErrFetchFailed = errors.New("contentcache: fetch failed")

	// ErrClearFailed is returned when one or more deletions failed during
	// Clear. Partial clears are possible.
	ErrClearFailed = errors.New("contentcache: clear failed")
)
