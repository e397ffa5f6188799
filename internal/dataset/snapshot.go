package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is the on-disk dataset document.
type Snapshot struct {
	GeneratedAt string   `json:"generated_at"`
	Count       int      `json:"count"`
	Items       []Record `json:"items"`
}

// NewSnapshot stamps items with the generation time.
func NewSnapshot(items []Record, now time.Time) Snapshot {
	if items == nil {
		items = []Record{}
	}
	return Snapshot{
		GeneratedAt: now.UTC().Format("2006-01-02T15:04:05Z"),
		Count:       len(items),
		Items:       items,
	}
}

// WriteSnapshot saves items to path, creating parent directories. The file is
// written to a temporary name first and renamed, so readers never see a
// partial document.
func WriteSnapshot(path string, items []Record, now time.Time) error {
	data, err := json.MarshalIndent(NewSnapshot(items, now), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
