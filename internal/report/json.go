package report

import (
	"encoding/json"
	"fmt"
)

// RenderJSON renders the report as indented JSON for downstream
// tooling.
func RenderJSON(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render json report: %w", err)
	}
	return append(data, '\n'), nil
}
