package tests

import (
	"slices"
	"testing"

	"github.com/aretw0/aniame/pkg/ports"
)

// SchemaLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.SchemaLoader.
func SchemaLoaderContractTest(t *testing.T, loader ports.SchemaLoader, setupData map[string][]byte) {
	t.Helper()

	t.Run("GetSchema_Success", func(t *testing.T) {
		for name, want := range setupData {
			content, err := loader.GetSchema(name)
			if err != nil {
				t.Fatalf("unexpected error getting schema %s: %v", name, err)
			}
			if string(content) != string(want) {
				t.Errorf("content mismatch for %s. got %q, want %q", name, content, want)
			}
		}
	})

	t.Run("GetSchema_NotFound", func(t *testing.T) {
		if _, err := loader.GetSchema("non-existent-schema"); err == nil {
			t.Error("expected error for non-existent schema, got nil")
		}
	})

	t.Run("ListSchemas", func(t *testing.T) {
		names, err := loader.ListSchemas()
		if err != nil {
			t.Fatalf("unexpected error listing schemas: %v", err)
		}
		if len(names) != len(setupData) {
			t.Errorf("expected %d schemas, got %d", len(setupData), len(names))
		}
		if !slices.IsSorted(names) {
			t.Errorf("schema names not sorted: %v", names)
		}
		for name := range setupData {
			if !slices.Contains(names, name) {
				t.Errorf("schema %s missing from list", name)
			}
		}
	})
}
