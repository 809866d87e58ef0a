// Package errors provides the classified error primitives used across nmcr.
//
// Errors carry a category (what kind of failure), a severity and a context map
// (path, template id). The CLI adapter turns categories into exit codes; the
// HTTP adapter turns them into status codes for the watch status endpoint.
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "failed to read document").
//		WithContext("path", path).
//		Build()
package errors
