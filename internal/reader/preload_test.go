package reader

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentServer(t *testing.T) (*httptest.Server, *sync.Map) {
	t.Helper()

	var requested sync.Map
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		require.GreaterOrEqual(t, len(parts), 4)
		segmentID := parts[3]
		requested.Store(segmentID, true)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"comments":[{"id":1,"commentText":"first on %s"}],"totalPages":1,"currentPage":1}`, segmentID)
	}))
	t.Cleanup(srv.Close)
	return srv, &requested
}

func TestPreloadCommentsFetchesEachSegment(t *testing.T) {
	srv, requested := commentServer(t)
	client := NewClient(srv.URL)

	segments := []Segment{{ID: 1}, {ID: 2}, {ID: 3}}
	results := PreloadComments(client, segments)

	require.Len(t, results, 3)
	for _, seg := range segments {
		page := results[seg.ID]
		require.NotNil(t, page, "segment %d missing", seg.ID)
		require.Len(t, page.Comments, 1)
		assert.Equal(t, fmt.Sprintf("first on %d", seg.ID), page.Comments[0].CommentText)
	}

	_, ok := requested.Load("1")
	assert.True(t, ok)
}

func TestPreloadCommentsCapsAtTenSegments(t *testing.T) {
	srv, requested := commentServer(t)
	client := NewClient(srv.URL)

	var segments []Segment
	for i := int64(1); i <= 25; i++ {
		segments = append(segments, Segment{ID: i})
	}

	results := PreloadComments(client, segments)

	assert.Len(t, results, 10)
	count := 0
	requested.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Equal(t, 10, count)
}

func TestPreloadCommentsToleratesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL)
	results := PreloadComments(client, []Segment{{ID: 1}, {ID: 2}})

	require.Len(t, results, 2)
	assert.Nil(t, results[1])
	assert.Nil(t, results[2])
}

func TestPreloadCommentsEmptyInput(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")
	assert.Empty(t, PreloadComments(client, nil))
}
