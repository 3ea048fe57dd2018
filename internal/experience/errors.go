// Package experience parses work-history entries and aggregates them into an experience profile.
package experience

import "fmt"

// MalformedEntryError represents an experience entry that could not be used.
// The entry is discarded and the analysis continues.
type MalformedEntryError struct {
	Index   int    // position of the entry in its input
	Title   string // entry title, when known
	Message string
	Cause   error
}

func (e *MalformedEntryError) Error() string {
	label := fmt.Sprintf("entry %d", e.Index+1)
	if e.Title != "" {
		label = fmt.Sprintf("entry %d (%s)", e.Index+1, e.Title)
	}
	if e.Cause != nil {
		return fmt.Sprintf("malformed experience %s: %s: %v", label, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed experience %s: %s", label, e.Message)
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Cause
}
