package search

import "errors"

// ErrSourceUnavailable marks a recoverable provider failure: network error,
// non-success status or a payload that didn't parse. Callers keep their
// previous results and surface a retryable notice.
var ErrSourceUnavailable = errors.New("search: venue source unavailable")
