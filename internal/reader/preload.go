package reader

import (
	"log"
	"sync"
)

const preloadSegmentCount = 10

// PreloadComments fetches the first comment page for the opening segments
// of a chapter concurrently, so comment counts render without a visible
// delay when the reader starts scrolling. At most preloadSegmentCount
// segments are fetched; failures are logged and leave a nil entry.
//
// The returned map is keyed by segment ID.
func PreloadComments(client *Client, segments []Segment) map[int64]*CommentPage {
	n := len(segments)
	if n > preloadSegmentCount {
		n = preloadSegmentCount
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[int64]*CommentPage, n)
	)

	for _, seg := range segments[:n] {
		wg.Add(1)
		go func(segmentID int64) {
			defer wg.Done()

			page, err := client.GetSegmentComments(segmentID, 1, 10)
			if err != nil {
				log.Printf("Failed to preload comments for segment %d: %v", segmentID, err)
			}

			mu.Lock()
			results[segmentID] = page
			mu.Unlock()
		}(seg.ID)
	}

	wg.Wait()
	return results
}
