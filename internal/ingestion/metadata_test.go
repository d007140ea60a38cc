package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_JSONMarshaling(t *testing.T) {
	metadata := &Metadata{
		Filename:  "jane_doe.pdf",
		Size:      1024,
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      "abcd1234",
		Streams:   3,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, jsonBytes)

	var unmarshaled Metadata
	err = json.Unmarshal(jsonBytes, &unmarshaled)
	require.NoError(t, err)
	assert.Equal(t, *metadata, unmarshaled)
	assert.NotContains(t, string(jsonBytes), "skipped_streams")
}

func TestComputeHash(t *testing.T) {
	hash1 := computeHash([]byte("test content"))
	hash2 := computeHash([]byte("different content"))

	// Hash should be 64 hex characters (SHA256)
	assert.Len(t, hash1, 64)
	assert.Len(t, hash2, 64)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hash1, computeHash([]byte("test content")))
}

func TestNewMetadata(t *testing.T) {
	data := []byte("%PDF-1.4 test")

	metadata := NewMetadata(data, "/uploads/cvs/Jane_Doe_CV.pdf")

	assert.Equal(t, "Jane_Doe_CV.pdf", metadata.Filename)
	assert.Equal(t, len(data), metadata.Size)
	assert.Equal(t, computeHash(data), metadata.Hash)

	_, err := time.Parse(time.RFC3339, metadata.Timestamp)
	assert.NoError(t, err)
}

func TestNewMetadata_EmptyFilename(t *testing.T) {
	metadata := NewMetadata([]byte("x"), "")

	assert.Empty(t, metadata.Filename)
	assert.NotEmpty(t, metadata.Timestamp)
	assert.NotEmpty(t, metadata.Hash)
}

func TestMetadata_WithStats(t *testing.T) {
	metadata := NewMetadata([]byte("x"), "cv.pdf").WithStats(DecodeStats{Streams: 4, Skipped: 1})

	assert.Equal(t, 4, metadata.Streams)
	assert.Equal(t, 1, metadata.Skipped)
}
