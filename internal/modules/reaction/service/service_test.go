package reaction

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
	novelRepo "kweezy.app/server/internal/modules/novel/repository"
	"kweezy.app/server/pkg/apperror"
)

type reactionKey struct {
	userID       uuid.UUID
	segmentID    int64
	reactionType string
}

type fakeReactionRepo struct {
	rows map[reactionKey]bool
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{rows: make(map[reactionKey]bool)}
}

func (f *fakeReactionRepo) Toggle(_ context.Context, reaction *entity.Reaction) (bool, error) {
	key := reactionKey{reaction.UserID, reaction.SegmentID, reaction.ReactionType}
	if f.rows[key] {
		delete(f.rows, key)
		return false, nil
	}
	f.rows[key] = true
	return true, nil
}

func (f *fakeReactionRepo) GetReactionCounts(_ context.Context, segmentID int64) (map[string]int64, error) {
	counts := make(map[string]int64)
	for key := range f.rows {
		if key.segmentID == segmentID {
			counts[key.reactionType]++
		}
	}
	return counts, nil
}

type stubNovelRepo struct {
	novelRepo.NovelRepository
	segments map[int64]entity.Segment
}

func (s *stubNovelRepo) FindSegmentByID(_ context.Context, id int64) (*entity.Segment, error) {
	seg, ok := s.segments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &seg, nil
}

func newReactionFixture() (*fakeReactionRepo, ReactionService) {
	repo := newFakeReactionRepo()
	novels := &stubNovelRepo{segments: map[int64]entity.Segment{
		1: {ID: 1, ChapterID: 1, SegmentIndex: 0},
	}}
	return repo, NewReactionService(repo, novels, nil)
}

func TestToggleReactionRoundTrip(t *testing.T) {
	_, svc := newReactionFixture()
	userID := uuid.New()

	added, err := svc.Toggle(context.Background(), 1, userID, "heart")
	require.NoError(t, err)
	assert.True(t, added)

	counts, err := svc.GetCounts(context.Background(), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts["heart"])

	added, err = svc.Toggle(context.Background(), 1, userID, "heart")
	require.NoError(t, err)
	assert.False(t, added)

	counts, err = svc.GetCounts(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, counts["heart"])
}

func TestToggleReactionTypesIndependent(t *testing.T) {
	_, svc := newReactionFixture()
	userID := uuid.New()

	added, err := svc.Toggle(context.Background(), 1, userID, "heart")
	require.NoError(t, err)
	assert.True(t, added)

	// A different type from the same user is a second row, not a toggle
	added, err = svc.Toggle(context.Background(), 1, userID, "laugh")
	require.NoError(t, err)
	assert.True(t, added)

	counts, err := svc.GetCounts(context.Background(), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts["heart"])
	assert.EqualValues(t, 1, counts["laugh"])
}

func TestToggleReactionCountsPerUser(t *testing.T) {
	_, svc := newReactionFixture()

	for i := 0; i < 3; i++ {
		added, err := svc.Toggle(context.Background(), 1, uuid.New(), "heart")
		require.NoError(t, err)
		assert.True(t, added)
	}

	counts, err := svc.GetCounts(context.Background(), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, counts["heart"])
}

func TestToggleReactionValidation(t *testing.T) {
	_, svc := newReactionFixture()

	_, err := svc.Toggle(context.Background(), 1, uuid.New(), "  ")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = svc.Toggle(context.Background(), 99, uuid.New(), "heart")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestToggleReactionLengthCountsCharacters(t *testing.T) {
	_, svc := newReactionFixture()

	// Six emoji are 24 bytes but only 6 characters
	added, err := svc.Toggle(context.Background(), 1, uuid.New(), strings.Repeat("🔥", 6))
	require.NoError(t, err)
	assert.True(t, added)

	_, err = svc.Toggle(context.Background(), 1, uuid.New(), strings.Repeat("x", 21))
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}
