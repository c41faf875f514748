package comment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
	"kweezy.app/server/internal/modules/comment/dto"
	commentRepo "kweezy.app/server/internal/modules/comment/repository"
	novelRepo "kweezy.app/server/internal/modules/novel/repository"
	"kweezy.app/server/pkg/apperror"
)

type fakeCommentRepo struct {
	nextID   int64
	comments map[int64]*entity.Comment
	likes    map[int64]*entity.CommentLike
	nextLike int64
	user     entity.User
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		nextID:   1,
		nextLike: 1,
		comments: make(map[int64]*entity.Comment),
		likes:    make(map[int64]*entity.CommentLike),
		user:     entity.User{ID: uuid.New(), Username: "reader"},
	}
}

func (f *fakeCommentRepo) FindAllBySegment(_ context.Context, segmentID int64, viewerID *uuid.UUID) ([]commentRepo.CommentWithMeta, error) {
	var rows []commentRepo.CommentWithMeta
	for _, c := range f.comments {
		if c.SegmentID != segmentID {
			continue
		}
		var likeCount int64
		likedByViewer := false
		for _, l := range f.likes {
			if l.CommentID == c.ID {
				likeCount++
				if viewerID != nil && l.UserID == *viewerID {
					likedByViewer = true
				}
			}
		}
		rows = append(rows, commentRepo.CommentWithMeta{
			Comment:       *c,
			User:          f.user,
			LikeCount:     likeCount,
			LikedByViewer: likedByViewer,
		})
	}
	return rows, nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id int64) (*entity.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *c
	out.User = f.user
	return &out, nil
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	comment.ID = f.nextID
	comment.CreatedAt = time.Now()
	f.nextID++
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeCommentRepo) FindLike(_ context.Context, userID uuid.UUID, commentID int64) (*entity.CommentLike, error) {
	for _, l := range f.likes {
		if l.UserID == userID && l.CommentID == commentID {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCommentRepo) CreateLike(_ context.Context, like *entity.CommentLike) error {
	like.ID = f.nextLike
	f.nextLike++
	stored := *like
	f.likes[like.ID] = &stored
	return nil
}

func (f *fakeCommentRepo) DeleteLike(_ context.Context, id int64) error {
	delete(f.likes, id)
	return nil
}

func (f *fakeCommentRepo) CountLikes(_ context.Context, commentID int64) (int64, error) {
	var count int64
	for _, l := range f.likes {
		if l.CommentID == commentID {
			count++
		}
	}
	return count, nil
}

// stubNovelRepo serves segment and chapter lookups from maps; everything
// else panics via the embedded nil interface.
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

func newCommentFixture() (*fakeCommentRepo, CommentService) {
	repo := newFakeCommentRepo()
	novels := &stubNovelRepo{segments: map[int64]entity.Segment{
		1: {ID: 1, ChapterID: 1, SegmentIndex: 0},
		2: {ID: 2, ChapterID: 1, SegmentIndex: 1},
	}}
	svc := NewCommentService(repo, novels, nil, time.Second, noRand)
	return repo, svc
}

func TestCreateCommentTrimsAndReturnsUser(t *testing.T) {
	_, svc := newCommentFixture()
	userID := uuid.New()

	resp, err := svc.CreateComment(context.Background(), 1, userID, dto.CreateCommentRequest{
		CommentText: "  great line  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "great line", resp.CommentText)
	assert.Equal(t, "reader", resp.User.Username)
	assert.Zero(t, resp.LikeCount)
	assert.False(t, resp.LikedByCurrentUser)
}

func TestCreateCommentRejectsEmptyText(t *testing.T) {
	_, svc := newCommentFixture()

	_, err := svc.CreateComment(context.Background(), 1, uuid.New(), dto.CreateCommentRequest{
		CommentText: "   ",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestCreateCommentLengthCountsCharacters(t *testing.T) {
	_, svc := newCommentFixture()
	userID := uuid.New()

	// 600 CJK characters are 1800 bytes but well within the limit
	long := strings.Repeat("好", 600)
	_, err := svc.CreateComment(context.Background(), 1, userID, dto.CreateCommentRequest{
		CommentText: long,
	})
	require.NoError(t, err)

	tooLong := strings.Repeat("好", 1001)
	_, err = svc.CreateComment(context.Background(), 1, userID, dto.CreateCommentRequest{
		CommentText: tooLong,
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "Comment cannot exceed 1000 characters.", appErr.Message)
}

func TestCreateCommentUnknownSegment(t *testing.T) {
	_, svc := newCommentFixture()

	_, err := svc.CreateComment(context.Background(), 99, uuid.New(), dto.CreateCommentRequest{
		CommentText: "hello",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestCreateCommentParentMustShareSegment(t *testing.T) {
	_, svc := newCommentFixture()
	userID := uuid.New()

	parent, err := svc.CreateComment(context.Background(), 1, userID, dto.CreateCommentRequest{
		CommentText: "parent",
	})
	require.NoError(t, err)

	// Reply on a different segment than the parent
	_, err = svc.CreateComment(context.Background(), 2, userID, dto.CreateCommentRequest{
		CommentText:     "reply",
		ParentCommentID: &parent.ID,
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "Invalid parent comment.", appErr.Message)
}

func TestListCommentsPaginatesAfterRanking(t *testing.T) {
	_, svc := newCommentFixture()
	userID := uuid.New()

	for i := 0; i < 12; i++ {
		_, err := svc.CreateComment(context.Background(), 1, userID, dto.CreateCommentRequest{
			CommentText: "comment",
		})
		require.NoError(t, err)
	}

	page1, err := svc.ListComments(context.Background(), 1, nil, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page1.Comments, 10)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, 1, page1.CurrentPage)

	page2, err := svc.ListComments(context.Background(), 1, nil, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page2.Comments, 2)
	assert.Equal(t, 2, page2.CurrentPage)
}

func TestListCommentsUnknownSegment(t *testing.T) {
	_, svc := newCommentFixture()

	_, err := svc.ListComments(context.Background(), 42, nil, 1, 10)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestListCommentsValidatesPageAndLimit(t *testing.T) {
	_, svc := newCommentFixture()

	_, err := svc.ListComments(context.Background(), 1, nil, 0, 10)
	assert.Error(t, err)

	_, err = svc.ListComments(context.Background(), 1, nil, 1, 51)
	assert.Error(t, err)
}

func TestToggleLikeRoundTrip(t *testing.T) {
	_, svc := newCommentFixture()
	userID := uuid.New()

	comment, err := svc.CreateComment(context.Background(), 1, userID, dto.CreateCommentRequest{
		CommentText: "likeable",
	})
	require.NoError(t, err)

	liked, count, err := svc.ToggleLike(context.Background(), comment.ID, userID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 1, count)

	liked, count, err = svc.ToggleLike(context.Background(), comment.ID, userID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Zero(t, count)
}

func TestToggleLikeUnknownComment(t *testing.T) {
	_, svc := newCommentFixture()

	_, _, err := svc.ToggleLike(context.Background(), 123, uuid.New())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestListCommentsViewerLikes(t *testing.T) {
	_, svc := newCommentFixture()
	author := uuid.New()
	viewer := uuid.New()

	comment, err := svc.CreateComment(context.Background(), 1, author, dto.CreateCommentRequest{
		CommentText: "popular",
	})
	require.NoError(t, err)

	_, _, err = svc.ToggleLike(context.Background(), comment.ID, viewer)
	require.NoError(t, err)

	page, err := svc.ListComments(context.Background(), 1, &viewer, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	assert.EqualValues(t, 1, page.Comments[0].LikeCount)
	assert.True(t, page.Comments[0].LikedByCurrentUser)

	anon, err := svc.ListComments(context.Background(), 1, nil, 1, 10)
	require.NoError(t, err)
	require.Len(t, anon.Comments, 1)
	assert.False(t, anon.Comments[0].LikedByCurrentUser)
}
