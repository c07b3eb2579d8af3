// Package services defines the shared error taxonomy and context plumbing
// used across pipeline components.
//
// Errors are classified with sentinel markers (validation, missing source,
// stage execution, configuration) so callers can branch on failure class with
// errors.Is without parsing messages. Context helpers carry the active stage,
// source file, and run identifier so structured logging stays consistent
// across packages.
package services
