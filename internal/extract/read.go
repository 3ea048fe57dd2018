package extract

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-intel/internal/types"
)

// ReadFile loads a resume from disk. Plain text and markdown are split into
// sections, HTML is reduced to its visible text first, and .json files hold a
// Document produced by an external extractor.
func ReadFile(path string) (*types.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md", ".text", ".json", ".html", ".htm":
	default:
		return nil, &UnsupportedFormatError{Path: path, Extension: ext}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Message: "failed to read document", Cause: err}
	}
	return Decode(filepath.Base(path), ext, data)
}

// Decode builds a document from raw bytes. kind is a file extension (".md",
// ".html", ".json") or a MIME type ("text/html"); anything else is read as
// plain text.
func Decode(source, kind string, data []byte) (*types.Document, error) {
	switch {
	case kind == ".html" || kind == ".htm" || strings.HasPrefix(kind, "text/html"):
		doc, err := ParseHTML(source, bytes.NewReader(data))
		if err != nil {
			return nil, &ReadError{Path: source, Message: "failed to decode document", Cause: err}
		}
		return doc, nil
	case kind == ".json" || strings.HasPrefix(kind, "application/json"):
		var doc types.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &ReadError{Path: source, Message: "failed to decode document", Cause: err}
		}
		if doc.Source == "" {
			doc.Source = source
		}
		return Prepare(&doc), nil
	default:
		return Parse(source, string(data)), nil
	}
}

// Prepare readies a document from an external extractor: one carrying only
// raw text is split into sections, anything else is normalized.
func Prepare(doc *types.Document) *types.Document {
	if len(doc.Sections) == 0 {
		return Parse(doc.Source, doc.RawText)
	}
	return Normalize(doc)
}
