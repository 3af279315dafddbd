package export

import (
	"encoding/json"

	"herdboard/internal/domain/analytics"
)

// JSONRenderer serializes the report verbatim. This is the canonical
// machine-readable representation; the API response body uses the same
// field names.
type JSONRenderer struct{}

// NewJSONRenderer creates the JSON renderer.
func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(report *analytics.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

func (r *JSONRenderer) ContentType() string { return "application/json" }
func (r *JSONRenderer) Extension() string   { return "json" }
