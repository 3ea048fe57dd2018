// Package extract turns text and HTML resumes into sections and structural signals.
package extract

import "fmt"

// UnsupportedFormatError is returned for files the plain-text extractor cannot read.
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q for %s (supported: .txt, .md, .html, .json)", e.Extension, e.Path)
}

// ReadError wraps a failure to read or decode a document file.
type ReadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
