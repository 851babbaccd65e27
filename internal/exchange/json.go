package exchange

import (
	"runlog/internal/models"

	json "github.com/goccy/go-json"
)

// EncodeJSON renders the snapshot the way it is offered for download.
func EncodeJSON(snapshot models.Snapshot) ([]byte, error) {
	if snapshot.Runs == nil {
		snapshot.Runs = []models.RunEntry{}
	}
	return json.MarshalIndent(snapshot, "", "  ")
}

// DecodeJSON accepts a previously exported snapshot.
func DecodeJSON(data []byte) (models.Snapshot, error) {
	return models.ParseSnapshot(data)
}
