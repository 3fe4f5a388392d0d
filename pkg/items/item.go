package items

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
)

// IDField is the JSON key that carries the store-assigned identifier.
const IDField = "id"

// Item is a single record held by the store.
type Item struct {
	// ID is assigned by the store and never changes.
	ID int64
	// Fields holds the caller-supplied data. It never contains IDField.
	Fields map[string]any
}

// ToJSON flattens the item into a JSON-compatible map.
// Fields sit at the root level and IDField is set from ID.
func (item *Item) ToJSON() map[string]any {
	result := make(map[string]any, len(item.Fields)+1)
	for k, v := range item.Fields {
		result[k] = v
	}
	result[IDField] = item.ID
	return result
}

// MarshalJSON renders the flattened form produced by ToJSON.
func (item Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(item.ToJSON())
}

// UnmarshalJSON parses a flattened item, as returned by the API.
func (item *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("item must be a JSON object")
	}

	item.ID = 0
	if v, ok := raw[IDField]; ok {
		n, ok := v.(float64)
		if !ok || n != math.Trunc(n) {
			return fmt.Errorf("item id must be an integer, got %v", v)
		}
		item.ID = int64(n)
	}
	item.Fields = stripSystemFields(raw)
	return nil
}

// Clone returns a copy whose field map can be modified independently.
// Nested values are shared, matching the store's shallow merge semantics.
func (item *Item) Clone() Item {
	return Item{ID: item.ID, Fields: maps.Clone(item.Fields)}
}

// stripSystemFields copies data without keys owned by the store.
func stripSystemFields(data map[string]any) map[string]any {
	fields := make(map[string]any, len(data))
	for k, v := range data {
		if k == IDField {
			continue
		}
		fields[k] = v
	}
	return fields
}
