package jsonstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert"

	"github.com/Makepad-fr/clido/internal/model"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	items := []model.Item{{Text: "buy milk "}, {Text: "call mom ", Done: true}}

	assert.NoError(t, Save(path, items))

	b, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"index": 1`)
	assert.Contains(t, string(b), `"text": "call mom "`)

	got, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, Save(filepath.Join(dir, "todos.json"), nil))

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, "todos.json", entries[0].Name())
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	assert.NoError(t, Save(path, []model.Item{{Text: "a "}, {Text: "b "}}))
	assert.NoError(t, Save(path, []model.Item{{Text: "c ", Done: true}}))

	got, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, []model.Item{{Text: "c ", Done: true}}, got)
}

func TestSaveFailureLeavesNothingBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todos.json")
	assert.NoError(t, Save(path, []model.Item{{Text: "keep "}}))

	// A directory sitting at the destination makes the final rename fail.
	blocked := filepath.Join(dir, "blocked")
	assert.NoError(t, os.Mkdir(blocked, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(blocked, "x"), nil, 0o644))
	err := Save(blocked, []model.Item{{Text: "lost "}})
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"blocked", "todos.json"}, names)

	got, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, []model.Item{{Text: "keep "}}, got)
}

func TestSaveIntoMissingDir(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "nope", "todos.json"), nil)
	assert.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "create file"))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	assert.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "json unmarshal"))
}
