package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/glcanvas/internal/frame"
)

type ExportData struct {
	RunMetadata
	Samples []frame.Sample `json:"samples"`
}

// ExportJSON writes a run's metadata and, when given, its samples.
func ExportJSON(w io.Writer, meta *RunMetadata, samples []frame.Sample) error {
	data := ExportData{RunMetadata: *meta, Samples: samples}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
