package items

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ErrNoSeedFiles is returned when a seed pattern matches nothing.
var ErrNoSeedFiles = errors.New("no seed files match pattern")

// LoadSeedFiles reads seed records from every file matching patterns.
// Patterns support ** via doublestar. Each file holds a YAML or JSON array
// of objects. Files are read in lexical order per pattern, and records keep
// their file order, so seeded identifiers are deterministic.
func LoadSeedFiles(patterns []string) ([]map[string]any, error) {
	var records []map[string]any
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid seed pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoSeedFiles, pattern)
		}
		slices.Sort(matches)

		for _, path := range matches {
			fileRecords, err := LoadSeedFile(path)
			if err != nil {
				return nil, err
			}
			records = append(records, fileRecords...)
		}
	}
	return records, nil
}

// LoadSeedFile reads the seed records in a single file.
func LoadSeedFile(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	// YAML is a superset of JSON, so one decoder covers both formats.
	var records []map[string]any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("seed file %s: record %d is not an object", path, i)
		}
		fields, err := jsonFields(r)
		if err != nil {
			return nil, fmt.Errorf("seed file %s: record %d: %w", path, i, err)
		}
		records[i] = fields
	}
	return records, nil
}

// jsonFields re-decodes a YAML record through encoding/json so it holds the
// same value types as a record posted over HTTP. YAML-only shapes such as
// non-string mapping keys or .inf are rejected.
func jsonFields(record map[string]any) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("record is not representable as JSON: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("record is not representable as JSON: %w", err)
	}
	return fields, nil
}
