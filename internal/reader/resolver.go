package reader

// Position is where the reader should resume inside a novel.
type Position struct {
	ChapterID     int64
	ChapterNumber int
	ScrollY       float64
}

// ResolvePosition scans the local scroll cache across all of a novel's
// chapters and picks the entry with the highest chapter number. A cached
// offset of zero still counts: opening a chapter is reading it. Returns nil
// when no chapter of the novel has a cached position.
//
// The result is computed fresh on every call. Chapters can be added between
// reads, so the answer is never cached.
func ResolvePosition(store *Store, novelID int64, chapters []Chapter) *Position {
	var best *Position
	for _, ch := range chapters {
		offset, ok := store.Scroll(novelID, ch.ID)
		if !ok {
			continue
		}
		if best == nil || ch.ChapterNumber > best.ChapterNumber {
			best = &Position{
				ChapterID:     ch.ID,
				ChapterNumber: ch.ChapterNumber,
				ScrollY:       offset,
			}
		}
	}
	return best
}
