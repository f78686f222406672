package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kjk/common/atomicfile"

	"github.com/Makepad-fr/clido/internal/model"
)

// JSON export of the binary store. Human-readable, portable, and
// independent of the on-disk record format.

type entry struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Done  bool   `json:"done"`
}

// Load reads an export written by Save. Indexes in the file are ignored;
// order is taken from the array.
func Load(path string) ([]model.Item, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var entries []entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	items := make([]model.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, model.Item{Text: e.Text, Done: e.Done})
	}
	return items, nil
}

// Save writes items as an indented JSON array. The data goes to a temp
// file in the same directory that is renamed over path on Close, so a
// failed save never leaves a half-written export behind.
func Save(path string, items []model.Item) error {
	entries := make([]entry, 0, len(items))
	for i, it := range items {
		entries = append(entries, entry{Index: i, Text: it.Text, Done: it.Done})
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	f, err := atomicfile.New(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.RemoveIfNotClosed()

	if _, err := f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}
