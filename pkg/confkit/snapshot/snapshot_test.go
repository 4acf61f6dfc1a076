package snapshot_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/confkit/pkg/confkit"
	"github.com/randalmurphal/confkit/pkg/confkit/snapshot"
)

// captureStore parses a config body and captures it.
func captureStore(t *testing.T, body string) *snapshot.Snapshot {
	t.Helper()
	store, err := confkit.Parse(strings.NewReader(body))
	require.NoError(t, err)
	return snapshot.Capture(store)
}

func TestCapture(t *testing.T) {
	snap := captureStore(t, "port=8080\nratio=0.5\nname=hello\nbig=4294967296\n")

	assert.Equal(t, snapshot.Version, snap.Version)
	assert.NotEmpty(t, snap.ID)
	assert.False(t, snap.TakenAt.IsZero())
	require.Len(t, snap.Entries, 4)

	assert.Equal(t, snapshot.Record{Key: "port", Kind: "int", Num: 8080}, snap.Entries[0])
	assert.Equal(t, snapshot.Record{Key: "ratio", Kind: "float64", Flt: 0.5}, snap.Entries[1])
	assert.Equal(t, snapshot.Record{Key: "name", Kind: "string", Str: "hello"}, snap.Entries[2])
	assert.Equal(t, snapshot.Record{Key: "big", Kind: "int64", Num: 4294967296}, snap.Entries[3])
}

func TestCapture_UniqueIDs(t *testing.T) {
	first := captureStore(t, "a=1\n")
	second := captureStore(t, "a=1\n")

	assert.NotEqual(t, first.ID, second.ID)
}

func TestCapture_KeepsDuplicates(t *testing.T) {
	snap := captureStore(t, "k=1\nk=2\n")

	require.Len(t, snap.Entries, 2)
	assert.Equal(t, int64(1), snap.Entries[0].Num)
	assert.Equal(t, int64(2), snap.Entries[1].Num)
}

func TestCapture_EmptyStore(t *testing.T) {
	snap := captureStore(t, "")

	assert.NotEmpty(t, snap.ID)
	assert.Empty(t, snap.Entries)
}

func TestSnapshot_MarshalUnmarshal(t *testing.T) {
	original := captureStore(t, "port=8080\nratio=0.5\nname=hello world\n")

	data, err := original.Marshal()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	loaded, err := snapshot.Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, original.Version, loaded.Version)
	assert.Equal(t, original.ID, loaded.ID)
	assert.Equal(t, original.Path, loaded.Path)
	assert.Equal(t, original.Entries, loaded.Entries)
	assert.WithinDuration(t, original.TakenAt, loaded.TakenAt, time.Second)
}

func TestSnapshot_UnmarshalInvalidJSON(t *testing.T) {
	_, err := snapshot.Unmarshal([]byte("not json"))
	assert.Error(t, err)
}

func TestSnapshot_JSONFormat(t *testing.T) {
	snap := captureStore(t, "port=8080\n")

	data, err := snap.Marshal()
	require.NoError(t, err)

	var raw map[string]any
	err = json.Unmarshal(data, &raw)
	require.NoError(t, err)

	assert.Equal(t, float64(snapshot.Version), raw["version"])
	assert.Equal(t, snap.ID, raw["id"])
	assert.NotEmpty(t, raw["taken_at"])

	entries, ok := raw["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)

	entry, ok := entries[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "port", entry["key"])
	assert.Equal(t, "int", entry["kind"])
	assert.Equal(t, float64(8080), entry["num"])
}

func TestSnapshot_IntegerPrecision(t *testing.T) {
	// int64 payloads round-trip exactly through the record, not through
	// a float field.
	original := captureStore(t, "big=4294967296\n")

	data, err := original.Marshal()
	require.NoError(t, err)

	loaded, err := snapshot.Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 1)
	assert.Equal(t, int64(4294967296), loaded.Entries[0].Num)
}
