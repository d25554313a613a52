// package services defines interface ListSource for loading item lists
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/listmerge/internal/models"
	"github.com/desertthunder/listmerge/internal/shared"
	"gopkg.in/yaml.v3"
)

// ListSource loads the lists a merge session starts from.
type ListSource interface {
	// Load fetches and partitions the lists. Any error means the load failed.
	Load(ctx context.Context) ([]models.List, error)

	// Name describes the source for logs (e.g., an URL or a file path)
	Name() string
}

// DecodePayload parses a lists payload.
//
// The body must be a JSON object with a "lists" array whose items all carry a unique id.
func DecodePayload(data []byte) ([]models.RawItem, error) {
	var body struct {
		Lists *[]models.RawItem `json:"lists"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedPayload, err)
	}
	return checkPayload(body.Lists)
}

// DecodeYAMLPayload parses the YAML form of a lists payload under the same rules as [DecodePayload].
func DecodeYAMLPayload(data []byte) ([]models.RawItem, error) {
	var body struct {
		Lists *[]models.RawItem `yaml:"lists"`
	}
	if err := yaml.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedPayload, err)
	}
	return checkPayload(body.Lists)
}

// ReadPayloadFile reads and decodes a payload file, choosing YAML for .yaml and .yml files and JSON otherwise.
func ReadPayloadFile(path string) ([]models.RawItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAMLPayload(data)
	default:
		return DecodePayload(data)
	}
}

func checkPayload(lists *[]models.RawItem) ([]models.RawItem, error) {
	if lists == nil {
		return nil, fmt.Errorf("%w: missing \"lists\"", shared.ErrMalformedPayload)
	}

	seen := make(map[models.ItemID]bool, len(*lists))
	for i, raw := range *lists {
		if raw.ID == "" {
			return nil, fmt.Errorf("%w: item %d has no id", shared.ErrMalformedPayload, i)
		}
		if seen[raw.ID] {
			return nil, fmt.Errorf("%w: duplicate item id %q", shared.ErrMalformedPayload, raw.ID)
		}
		seen[raw.ID] = true
	}

	return *lists, nil
}

// EncodePayload renders lists back into the endpoint's wire shape.
func EncodePayload(lists []models.List) ([]byte, error) {
	var raw []models.RawItem
	for _, l := range lists {
		for _, it := range l.Items {
			raw = append(raw, models.RawItem{ID: it.ID, Name: it.Name, Description: it.Description, ListNumber: l.Number})
		}
	}
	return EncodeRawPayload(raw)
}

// EncodeRawPayload renders raw items in the endpoint's wire shape.
func EncodeRawPayload(raw []models.RawItem) ([]byte, error) {
	if raw == nil {
		raw = []models.RawItem{}
	}

	data, err := json.Marshal(models.Payload{Lists: raw})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return data, nil
}
