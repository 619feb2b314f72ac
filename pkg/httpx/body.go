package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// maxPeekBytes bounds how much of a request body the rate limiter will
// buffer while looking for a key field. Register/login bodies are tiny.
const maxPeekBytes = 64 << 10

// peekJSONField reads a top-level string field out of a JSON request body
// and puts the consumed bytes back so downstream handlers can decode the
// body as usual.
func peekJSONField(r *http.Request, field string) string {
	if r.Body == nil {
		return ""
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
	if err != nil {
		r.Body = io.NopCloser(bytes.NewReader(buf))
		return ""
	}
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(buf), r.Body))

	var payload map[string]any
	if err := json.Unmarshal(buf, &payload); err != nil {
		return ""
	}
	if v, ok := payload[field].(string); ok {
		return v
	}
	return ""
}
