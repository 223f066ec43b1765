// Package artifact serializes the aggregated dataset and moves it to and
// from disk. The encoding is canonical: struct fields in declaration order,
// map keys sorted, two-space indent, trailing newline. Encoding the same
// dataset always yields the same bytes.
package artifact

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/healthdash/backend/internal/domain"
)

// Serialize encodes the dataset canonically
func Serialize(ds *domain.AggregatedDataset) ([]byte, error) {
	if ds == nil {
		return nil, fmt.Errorf("artifact: nil dataset")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return nil, fmt.Errorf("artifact: failed to encode dataset: %w", err)
	}
	return buf.Bytes(), nil
}

// Deserialize decodes an artifact. Unknown fields are rejected so that a
// consumer never silently ignores data it does not understand.
func Deserialize(data []byte) (*domain.AggregatedDataset, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var ds domain.AggregatedDataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("artifact: failed to decode dataset: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("artifact: trailing data after dataset")
	}
	return &ds, nil
}

// Digest is the hex sha256 of the serialized bytes
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Write stores data at path atomically: a temp file in the same directory
// is renamed over the destination, so a failed run never leaves a partial
// artifact behind.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("artifact: failed to create %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("artifact: failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("artifact: failed to write: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("artifact: failed to chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("artifact: failed to close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("artifact: failed to move into place: %w", err)
	}
	return nil
}

// Read loads and decodes the artifact at path
func Read(path string) (*domain.AggregatedDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("artifact: failed to read %q: %w", path, err)
	}
	return Deserialize(data)
}
