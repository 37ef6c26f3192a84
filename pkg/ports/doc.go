/*
Package ports defines the driven ports (interfaces) used by the validator.

These interfaces decouple validation from the places schemas and referenced
records live, so the same dictionary can be checked against an in-memory
fixture in tests and a Redis-backed record set in production.

# Key Interfaces

  - SchemaLoader: Provides raw schema documents by name (e.g., from Memory).
  - ReferenceStore: Answers whether a record exists for a schema name and key.
*/
package ports
