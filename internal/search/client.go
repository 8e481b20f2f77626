package search

import (
	"io"
	"net/http"
)

// maxResponseBytes caps provider response reads; Overpass can return very
// large payloads for dense urban areas.
const maxResponseBytes = 8 << 20

func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
}
