package ranking

import "fmt"

// UnknownRoleError is returned when a role ID is not in the job catalog.
type UnknownRoleError struct {
	ID string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown job role: %q", e.ID)
}
