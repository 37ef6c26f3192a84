package memory

import (
	"fmt"
	"slices"

	"github.com/aretw0/aniame/pkg/schema"
)

// Loader implements ports.SchemaLoader using an in-memory map.
type Loader struct {
	schemas map[string][]byte
}

// NewLoader creates a new Loader with the provided raw schema documents.
func NewLoader(data map[string]string) *Loader {
	schemas := make(map[string][]byte, len(data))
	for name, doc := range data {
		schemas[name] = []byte(doc)
	}
	return &Loader{schemas: schemas}
}

// NewFromDictionary creates a Loader holding the document form of every
// descriptor in dict. This keeps test fixtures in Go.
func NewFromDictionary(dict schema.Dictionary) (*Loader, error) {
	schemas := make(map[string][]byte, len(dict))
	for _, name := range dict.Names() {
		doc, err := schema.Marshal(dict[name])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema %s: %w", name, err)
		}
		schemas[name] = doc
	}
	return &Loader{schemas: schemas}, nil
}

// GetSchema retrieves the raw document of a schema by name.
func (l *Loader) GetSchema(name string) ([]byte, error) {
	doc, ok := l.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", schema.ErrUnknownSchema, name)
	}
	return doc, nil
}

// ListSchemas returns all available schema names.
func (l *Loader) ListSchemas() ([]string, error) {
	names := make([]string, 0, len(l.schemas))
	for name := range l.schemas {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
