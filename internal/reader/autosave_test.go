package reader

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutosaverWritesOnTick(t *testing.T) {
	store := OpenStore(filepath.Join(t.TempDir(), "scroll_cache.json"))

	var offset atomic.Int64
	offset.Store(100)

	saver := NewAutosaver(store, nil, 1, func() (int64, float64) {
		return 10, float64(offset.Load())
	}, 20*time.Millisecond)
	saver.Start()
	defer saver.Close()

	require.Eventually(t, func() bool {
		v, ok := store.Scroll(1, 10)
		return ok && v == 100
	}, time.Second, 5*time.Millisecond)

	// Position moves; the next tick overwrites
	offset.Store(250)
	require.Eventually(t, func() bool {
		v, _ := store.Scroll(1, 10)
		return v == 250
	}, time.Second, 5*time.Millisecond)
}

func TestAutosaverFinalWriteOnClose(t *testing.T) {
	store := OpenStore(filepath.Join(t.TempDir(), "scroll_cache.json"))

	var offset atomic.Int64
	offset.Store(10)

	// Interval far longer than the test: only Close can write
	saver := NewAutosaver(store, nil, 1, func() (int64, float64) {
		return 10, float64(offset.Load())
	}, time.Hour)
	saver.Start()

	offset.Store(777)
	saver.Close()

	v, ok := store.Scroll(1, 10)
	require.True(t, ok)
	assert.Equal(t, 777.0, v)
}

func TestAutosaverSkipsWithoutChapter(t *testing.T) {
	store := OpenStore(filepath.Join(t.TempDir(), "scroll_cache.json"))

	saver := NewAutosaver(store, nil, 1, func() (int64, float64) {
		return 0, 0
	}, 10*time.Millisecond)
	saver.Start()
	time.Sleep(50 * time.Millisecond)
	saver.Close()

	_, ok := store.Scroll(1, 0)
	assert.False(t, ok)
}

func TestAutosaverSyncsOnlyWhenAuthenticated(t *testing.T) {
	var puts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			puts.Add(1)
		}
		w.Write([]byte(`{"message":"Progress saved."}`))
	}))
	defer srv.Close()

	store := OpenStore(filepath.Join(t.TempDir(), "scroll_cache.json"))
	client := NewClient(srv.URL)

	// No token: the local cache is written but the server is never called
	saver := NewAutosaver(store, client, 1, func() (int64, float64) {
		return 10, 42
	}, time.Hour)
	saver.Start()
	saver.Close()

	v, ok := store.Scroll(1, 10)
	require.True(t, ok)
	assert.Equal(t, 42.0, v)
	assert.Zero(t, puts.Load())

	client.SetToken("tok")
	saver = NewAutosaver(store, client, 1, func() (int64, float64) {
		return 10, 42
	}, time.Hour)
	saver.Start()
	saver.Close()

	require.Eventually(t, func() bool {
		return puts.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestAutosaverDefaultInterval(t *testing.T) {
	saver := NewAutosaver(nil, nil, 1, nil, 0)
	assert.Equal(t, defaultAutosaveInterval, saver.interval)

	saver = NewAutosaver(nil, nil, 1, nil, -time.Second)
	assert.Equal(t, defaultAutosaveInterval, saver.interval)
}
