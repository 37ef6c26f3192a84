package ports

// SchemaLoader defines how raw schema documents are retrieved.
// This allows the storage of a dictionary (files, memory, a registry) to be decoupled.
type SchemaLoader interface {
	// GetSchema retrieves the raw document of a schema by name.
	// It returns the raw bytes (JSON or YAML) or an error.
	GetSchema(name string) ([]byte, error)

	// ListSchemas returns the names of every schema available, sorted.
	ListSchemas() ([]string, error)
}
