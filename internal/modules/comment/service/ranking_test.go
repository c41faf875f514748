package comment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kweezy.app/server/internal/modules/comment/dto"
)

func makeComment(id int64, likes int64, createdAt time.Time) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        id,
		LikeCount: likes,
		CreatedAt: createdAt,
	}
}

// noRand pins every draw to the first pool element.
func noRand(n int) int { return 0 }

func commentIDs(comments []dto.CommentResponse) []int64 {
	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestRankCommentsSortsByLikesThenRecency(t *testing.T) {
	base := time.Now()
	comments := []dto.CommentResponse{
		makeComment(1, 1, base),
		makeComment(2, 5, base.Add(-time.Hour)),
		makeComment(3, 3, base.Add(-2*time.Hour)),
	}

	// Three comments leave both injection pools empty
	ranked := rankComments(comments, noRand)

	assert.Equal(t, []int64{2, 3, 1}, commentIDs(ranked))
}

func TestRankCommentsTieBreaksNewestFirst(t *testing.T) {
	base := time.Now()
	comments := []dto.CommentResponse{
		makeComment(1, 2, base.Add(-time.Hour)),
		makeComment(2, 2, base),
		makeComment(3, 2, base.Add(-2*time.Hour)),
	}

	ranked := rankComments(comments, noRand)

	assert.Equal(t, []int64{2, 1, 3}, commentIDs(ranked))
}

func TestRankCommentsInjectionPasses(t *testing.T) {
	base := time.Now()
	// Sorted order before injection: 1, 2, 3, 4, 5, 6
	comments := []dto.CommentResponse{
		makeComment(1, 5, base),
		makeComment(2, 5, base.Add(-time.Minute)),
		makeComment(3, 3, base),
		makeComment(4, 1, base),
		makeComment(5, 0, base),
		makeComment(6, 0, base.Add(-time.Minute)),
	}

	// First pass: pool is {4, 5, 6}, draw index 2 picks 6 and moves it to
	// position 2 -> 1, 2, 6, 3, 4, 5. Second pass: pool is {5}, draw picks 5
	// and moves it to position 4 -> 1, 2, 6, 3, 5, 4.
	draws := []int{2, 0}
	randInt := func(n int) int {
		d := draws[0]
		draws = draws[1:]
		require.Less(t, d, n)
		return d
	}

	ranked := rankComments(comments, randInt)

	assert.Equal(t, []int64{1, 2, 6, 3, 5, 4}, commentIDs(ranked))
	assert.Empty(t, draws, "both injection passes should draw")
}

func TestRankCommentsTopTwoNeverMove(t *testing.T) {
	base := time.Now()
	var comments []dto.CommentResponse
	for i := int64(1); i <= 10; i++ {
		comments = append(comments, makeComment(i, 20-i, base))
	}

	for draw := 0; draw < 5; draw++ {
		ranked := rankComments(append([]dto.CommentResponse(nil), comments...), func(n int) int {
			return draw % n
		})

		assert.EqualValues(t, 1, ranked[0].ID)
		assert.EqualValues(t, 2, ranked[1].ID)
	}
}

func TestRankCommentsPreservesMembership(t *testing.T) {
	base := time.Now()
	var comments []dto.CommentResponse
	for i := int64(1); i <= 8; i++ {
		comments = append(comments, makeComment(i, i%3, base.Add(time.Duration(i)*time.Second)))
	}

	ranked := rankComments(comments, func(n int) int { return n - 1 })

	require.Len(t, ranked, 8)
	seen := make(map[int64]bool)
	for _, c := range ranked {
		assert.False(t, seen[c.ID], "comment %d duplicated", c.ID)
		seen[c.ID] = true
	}
	assert.Len(t, seen, 8)
}

func TestRankCommentsEmptyAndSingle(t *testing.T) {
	assert.Empty(t, rankComments(nil, noRand))

	single := []dto.CommentResponse{makeComment(1, 0, time.Now())}
	ranked := rankComments(single, noRand)
	require.Len(t, ranked, 1)
	assert.EqualValues(t, 1, ranked[0].ID)
}

func TestPaginate(t *testing.T) {
	var comments []dto.CommentResponse
	for i := int64(1); i <= 12; i++ {
		comments = append(comments, makeComment(i, 0, time.Now()))
	}

	page1 := paginate(comments, 1, 10)
	require.Len(t, page1, 10)
	assert.EqualValues(t, 1, page1[0].ID)

	page2 := paginate(comments, 2, 10)
	require.Len(t, page2, 2)
	assert.EqualValues(t, 11, page2[0].ID)

	assert.Empty(t, paginate(comments, 3, 10))
}
