// internal/catalog/file_store.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	stderrors "card-advisor/internal/common/errors"
	"card-advisor/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// datasetSchema validates the persisted catalog file before decoding. The
// age field is optional: absence means no age restriction was recorded.
const datasetSchema = `{
	"type": "object",
	"required": ["dataset"],
	"properties": {
		"dataset": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["cardName", "minMonthlyIncome", "joiningFee", "annualFee", "rewardType", "rewardRate", "employmentType"],
				"properties": {
					"cardName": {"type": "string", "minLength": 1},
					"minMonthlyIncome": {"type": "integer", "minimum": 0},
					"joiningFee": {"type": "integer", "minimum": 0},
					"annualFee": {"type": "integer", "minimum": 0},
					"rewardType": {"type": "string"},
					"rewardRate": {"type": "array", "items": {"type": "number"}},
					"age": {"type": "array", "items": {"type": "integer"}},
					"employmentType": {"type": "string"},
					"eligibility": {"type": ["string", "null"]},
					"features": {"type": ["string", "null"]},
					"cardImage": {"type": ["string", "null"]}
				}
			}
		}
	}
}`

// FileStore reads the catalog from a JSON dataset file.
type FileStore struct {
	Path string
}

// NewFileStore creates a FileStore for the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads, schema-validates, and decodes the dataset file.
func (s *FileStore) Load(_ context.Context) ([]models.CardRecord, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", s.Path, err)
	}

	schemaLoader := gojsonschema.NewStringLoader(datasetSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, stderrors.NewCatalogInvalidError(err.Error())
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, stderrors.NewCatalogInvalidError(fmt.Sprintf("%v", errs))
	}

	var dataset models.Dataset
	if err := json.Unmarshal(raw, &dataset); err != nil {
		return nil, stderrors.NewCatalogInvalidError(err.Error())
	}

	return dataset.Dataset, nil
}
