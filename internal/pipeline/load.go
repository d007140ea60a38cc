package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/types"
)

// MaxDocumentBytes is the largest file LoadDocument will read.
const MaxDocumentBytes int64 = 10 << 20

// LoadDocument reads one CV file from disk.
func LoadDocument(path string) (types.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Document{}, fmt.Errorf("file not found: %w", err)
		}
		return types.Document{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return types.Document{}, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxDocumentBytes {
		return types.Document{}, &DocumentTooLargeError{Path: path, Size: info.Size(), Limit: MaxDocumentBytes}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("failed to read file: %w", err)
	}
	return types.NewDocument(data, path), nil
}

// LoadDocuments reads every .pdf file directly inside dir, sorted by filename.
func LoadDocuments(dir string) ([]types.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	docs := make([]types.Document, 0, len(names))
	for _, name := range names {
		doc, err := LoadDocument(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
