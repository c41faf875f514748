package reader

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Store is a file-backed scroll position cache. One entry per chapter the
// reader has opened, keyed "scrollpos/novel/<novelID>/chapter/<chapterID>".
// The file survives restarts; read and write failures are logged and
// otherwise ignored so a broken cache never blocks reading.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]float64
}

func OpenStore(path string) *Store {
	s := &Store{
		path:   path,
		values: make(map[string]float64),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read scroll cache %s, starting empty: %v", path, err)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		log.Printf("Corrupt scroll cache %s, starting empty: %v", path, err)
		s.values = make(map[string]float64)
	}
	return s
}

func scrollKey(novelID, chapterID int64) string {
	return fmt.Sprintf("scrollpos/novel/%d/chapter/%d", novelID, chapterID)
}

// SaveScroll records the offset and flushes to disk. An offset of zero is
// stored like any other value: it still marks the chapter as visited.
func (s *Store) SaveScroll(novelID, chapterID int64, offset float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[scrollKey(novelID, chapterID)] = offset
	s.flushLocked()
}

func (s *Store) Scroll(novelID, chapterID int64) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[scrollKey(novelID, chapterID)]
	return v, ok
}

func (s *Store) flushLocked() {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		log.Printf("Failed to encode scroll cache: %v", err)
		return
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("Failed to create scroll cache directory: %v", err)
			return
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("Failed to write scroll cache %s: %v", s.path, err)
	}
}
