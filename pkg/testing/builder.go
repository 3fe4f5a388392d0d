package testing

import "github.com/getmockd/itemd/pkg/items"

// ItemBuilder builds an item using a fluent API.
type ItemBuilder struct {
	server *Server
	fields map[string]any
}

// Set sets a single field.
func (b *ItemBuilder) Set(key string, value any) *ItemBuilder {
	b.fields[key] = value
	return b
}

// Fields merges fields into the item.
func (b *ItemBuilder) Fields(fields map[string]any) *ItemBuilder {
	for k, v := range fields {
		b.fields[k] = v
	}
	return b
}

// Create stores the item and returns it with its assigned id.
func (b *ItemBuilder) Create() items.Item {
	return b.server.store.Create(b.fields)
}
