// Package types provides type definitions for structured data used throughout the CV screening system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"path/filepath"
	"strings"
)

// Document is a raw uploaded CV: the file bytes plus the original filename, if known.
// The extraction core treats it as read-only.
type Document struct {
	Data     []byte
	Filename string
}

// NewDocument builds a Document, keeping only the base name of the supplied path.
func NewDocument(data []byte, filename string) Document {
	if filename != "" {
		filename = filepath.Base(filename)
	}
	return Document{Data: data, Filename: filename}
}

// IsEmpty reports whether the document carries no bytes.
func (d Document) IsEmpty() bool {
	return len(d.Data) == 0
}

// Stem returns the filename without its extension.
func (d Document) Stem() string {
	return strings.TrimSuffix(d.Filename, filepath.Ext(d.Filename))
}
