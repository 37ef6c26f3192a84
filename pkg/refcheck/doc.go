// Package refcheck builds validator.RefChecker implementations backed by a
// ports.ReferenceStore.
//
// ForeignKey treats scalar nodes at ref locations as keys of records of the
// referenced schema, and hands embedded objects back to structural
// validation. Cache memoizes positive lookups so repeated references to the
// same record hit the backend once.
package refcheck
