// internal/models/maintenance_image.go
package models

import (
	"encoding/base64"
	"strings"
)

// MaintenanceImage is one piece of photographic evidence. Data carries the
// payload as a data-URI (or bare base64) string so the dashboard can address
// it directly. An image belongs to exactly one stage slot.
type MaintenanceImage struct {
	ID          string `json:"id"`
	Data        string `json:"data"`
	Description string `json:"description,omitempty"`
}

// DecodePayload splits the data-URI into mime type and raw bytes.
// A payload that cannot be decoded yields ok=false; callers render a
// placeholder instead of failing the export.
func (img MaintenanceImage) DecodePayload() (mime string, raw []byte, ok bool) {
	data := img.Data
	mime = "image/png"

	if strings.HasPrefix(data, "data:") {
		semi := strings.Index(data, ";base64,")
		if semi < 0 {
			return "", nil, false
		}
		mime = data[len("data:"):semi]
		data = data[semi+len(";base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil || len(raw) == 0 {
		return "", nil, false
	}
	return mime, raw, true
}
