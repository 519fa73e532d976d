package fileutil

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAtomicWriteFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/out", 0o755))

	err := AtomicWriteFile(fsys, "/out/data.txt", []byte("hello"), 0o600)
	require.NoError(t, err)

	got, err := afero.ReadFile(fsys, "/out/data.txt")
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))

	// No temp files left behind.
	entries, err := afero.ReadDir(fsys, "/out")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestAtomicWriteFile_Overwrite(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/out", 0o755))

	require.NoError(t, AtomicWriteFile(fsys, "/out/data.txt", []byte("first"), 0o644))
	require.NoError(t, AtomicWriteFile(fsys, "/out/data.txt", []byte("second"), 0o644))

	got, err := afero.ReadFile(fsys, "/out/data.txt")
	require.NoError(t, err)
	require.Equal(t, "second", string(got))
}

func TestAtomicWriteJSON(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/out", 0o755))

	v := map[string]int{"files": 3}
	require.NoError(t, AtomicWriteJSON(fsys, "/out/manifest.json", v))

	data, err := afero.ReadFile(fsys, "/out/manifest.json")
	require.NoError(t, err)
	require.Equal(t, byte('\n'), data[len(data)-1], "trailing newline")

	var got map[string]int
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, v, got)
}

func TestAtomicWriteYAML(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/out", 0o755))

	v := map[string]any{"destination": "/backups", "interval_minutes": 60}
	require.NoError(t, AtomicWriteYAML(fsys, "/out/config.yaml", v))

	data, err := afero.ReadFile(fsys, "/out/config.yaml")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Equal(t, "/backups", got["destination"])
}
