package weathercache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	payload := json.RawMessage(`{"temperature":72,"region":"Local Area"}`)
	fetchedAt := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	t.Run("MissingFileReadsEmpty", func(t *testing.T) {
		c := New(filepath.Join(t.TempDir(), "weather_cache.json"))

		_, ok, err := c.Get("weather_miami,_fl")
		require.NoError(t, err)
		assert.False(t, ok)

		n, err := c.Count()
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("ReadAfterWrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weather_cache.json")
		c := New(path)

		require.NoError(t, c.Put("weather_miami,_fl", payload, fetchedAt))

		entry, ok, err := c.Get("weather_miami,_fl")
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, string(payload), string(entry.Data))
		assert.True(t, entry.Timestamp.Equal(fetchedAt))

		// A fresh handle over the same file sees the entry too.
		reopened := New(path)
		entry, ok, err = reopened.Get("weather_miami,_fl")
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, string(payload), string(entry.Data))
	})

	t.Run("OverwriteReplacesEntry", func(t *testing.T) {
		c := New(filepath.Join(t.TempDir(), "weather_cache.json"))

		require.NoError(t, c.Put("weather_austin,_tx", payload, fetchedAt))

		newer := json.RawMessage(`{"temperature":95}`)
		later := fetchedAt.Add(3 * time.Hour)
		require.NoError(t, c.Put("weather_austin,_tx", newer, later))

		entry, ok, err := c.Get("weather_austin,_tx")
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, string(newer), string(entry.Data))
		assert.True(t, entry.Timestamp.Equal(later))

		n, err := c.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("EntriesAreIndependent", func(t *testing.T) {
		c := New(filepath.Join(t.TempDir(), "weather_cache.json"))

		require.NoError(t, c.Put("weather_miami,_fl", payload, fetchedAt))
		require.NoError(t, c.Put("weather_denver,_co", json.RawMessage(`{"temperature":55}`), fetchedAt))

		n, err := c.Count()
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		_, ok, err := c.Get("weather_seattle,_wa")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("NoTempFilesLeftBehind", func(t *testing.T) {
		dir := t.TempDir()
		c := New(filepath.Join(dir, "weather_cache.json"))
		require.NoError(t, c.Put("weather_miami,_fl", payload, fetchedAt))

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, files, 1)
	})
}
