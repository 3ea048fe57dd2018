package catalog

import "fmt"

// CatalogError represents an inconsistent or unloadable reference catalog.
// It is fatal at startup.
type CatalogError struct {
	Catalog string // skills, job_roles or domains
	Message string
	Cause   error
}

func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog error: %s: %s: %v", e.Catalog, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog error: %s: %s", e.Catalog, e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}
