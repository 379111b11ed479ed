package storage

import (
	"encoding/json"
	"fmt"
)

// MarshalDocument encodes a document as the JSON blob both stores persist.
func MarshalDocument(doc *Document) ([]byte, error) {
	if doc.Version == 0 {
		doc.Version = DocumentVersion
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

// UnmarshalDocument decodes a persisted blob. Documents written by a newer
// version are rejected rather than silently truncated.
func UnmarshalDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	if doc.Version > DocumentVersion {
		return nil, fmt.Errorf("document version %d is newer than supported %d", doc.Version, DocumentVersion)
	}
	if doc.Version == 0 {
		doc.Version = DocumentVersion
	}
	return &doc, nil
}
