package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"
)

// Metadata describes one ingested document
type Metadata struct {
	Filename  string `json:"filename,omitempty"`
	Size      int    `json:"size"`
	Hash      string `json:"hash"`      // SHA256 hex digest of the raw bytes
	Timestamp string `json:"timestamp"` // RFC3339 format
	Streams   int    `json:"streams"`
	Skipped   int    `json:"skipped_streams,omitempty"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(data []byte, filename string) *Metadata {
	m := &Metadata{
		Size:      len(data),
		Hash:      computeHash(data),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if filename != "" {
		m.Filename = filepath.Base(filename)
	}
	return m
}

// WithStats records decoder counters on the metadata
func (m *Metadata) WithStats(stats DecodeStats) *Metadata {
	m.Streams = stats.Streams
	m.Skipped = stats.Skipped
	return m
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
