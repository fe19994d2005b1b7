package serve

import (
	"encoding/json"

	"github.com/resast/resast"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "parse" | "parse_batch" | "close"
	Payload json.RawMessage `json:"payload"`
}

// ParsePayload is the payload for "parse" requests
type ParsePayload struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// ParseBatchPayload is the payload for "parse_batch" requests
type ParseBatchPayload struct {
	Items []resast.ContentItem `json:"items"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "parse" | "parse_batch" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}
