package reader

import (
	"log"
	"time"
)

const defaultAutosaveInterval = 4 * time.Second

// PositionFunc reports the reader's current chapter and scroll offset.
type PositionFunc func() (chapterID int64, scrollY float64)

// Autosaver persists the reading position on a fixed tick while a chapter
// is open, and once more on Close. Every tick writes the local cache
// unconditionally, whether or not the position moved. The server upsert is
// best effort and runs off the tick goroutine so a slow or dead server
// never delays the local write.
type Autosaver struct {
	store    *Store
	client   *Client
	novelID  int64
	position PositionFunc
	interval time.Duration

	stop chan struct{}
	done chan struct{}
}

// NewAutosaver wires an autosaver for one novel. client may be nil for
// offline reading. A non-positive interval falls back to the default.
func NewAutosaver(store *Store, client *Client, novelID int64, position PositionFunc, interval time.Duration) *Autosaver {
	if interval <= 0 {
		interval = defaultAutosaveInterval
	}
	return &Autosaver{
		store:    store,
		client:   client,
		novelID:  novelID,
		position: position,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (a *Autosaver) Start() {
	go a.run()
}

func (a *Autosaver) run() {
	defer close(a.done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.save()
		case <-a.stop:
			return
		}
	}
}

// Close stops the tick loop and writes the position one final time, so the
// very latest offset survives even when the reader leaves between ticks.
func (a *Autosaver) Close() {
	close(a.stop)
	<-a.done
	a.save()
}

func (a *Autosaver) save() {
	chapterID, scrollY := a.position()
	if chapterID == 0 {
		return
	}

	a.store.SaveScroll(a.novelID, chapterID, scrollY)

	// Anonymous readers keep only the local cache
	if a.client != nil && a.client.Authenticated() {
		go func() {
			if err := a.client.SaveProgress(a.novelID, chapterID, scrollY); err != nil {
				log.Printf("Progress sync failed (will retry next tick): %v", err)
			}
		}()
	}
}
