package blog

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
	"kweezy.app/server/internal/modules/blog/dto"
	"kweezy.app/server/pkg/apperror"
)

type fakeBlogRepo struct {
	nextID int64
	posts  map[int64]*entity.BlogPost
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{nextID: 1, posts: make(map[int64]*entity.BlogPost)}
}

func (f *fakeBlogRepo) Create(_ context.Context, post *entity.BlogPost) error {
	post.ID = f.nextID
	f.nextID++
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakeBlogRepo) Update(_ context.Context, post *entity.BlogPost) error {
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakeBlogRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := f.posts[id]; !ok {
		return 0, nil
	}
	delete(f.posts, id)
	return 1, nil
}

func (f *fakeBlogRepo) FindByID(_ context.Context, id int64) (*entity.BlogPost, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeBlogRepo) FindPublishedByID(_ context.Context, id int64) (*entity.BlogPost, error) {
	p, ok := f.posts[id]
	if !ok || p.PublishedAt == nil {
		return nil, gorm.ErrRecordNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeBlogRepo) FindPublished(_ context.Context, offset, limit int) ([]entity.BlogPost, int64, error) {
	var published []entity.BlogPost
	for _, p := range f.posts {
		if p.PublishedAt != nil {
			published = append(published, *p)
		}
	}
	sort.Slice(published, func(i, j int) bool { return published[i].ID < published[j].ID })

	total := int64(len(published))
	if offset >= len(published) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(published) {
		end = len(published)
	}
	return published[offset:end], total, nil
}

func newBlogFixture() (*fakeBlogRepo, BlogService) {
	repo := newFakeBlogRepo()
	return repo, NewBlogService(repo, nil)
}

func TestBlogDraftsAreHidden(t *testing.T) {
	_, svc := newBlogFixture()
	author := uuid.New()

	draft, err := svc.Create(context.Background(), author, dto.CreateBlogPostRequest{
		Title:   "Work in progress",
		Content: "soon",
	})
	require.NoError(t, err)

	_, err = svc.GetPublished(context.Background(), draft.ID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)

	list, err := svc.ListPublished(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Empty(t, list.Posts)
}

func TestBlogPublishNowIsVisible(t *testing.T) {
	_, svc := newBlogFixture()

	post, err := svc.Create(context.Background(), uuid.New(), dto.CreateBlogPostRequest{
		Title:      "Launch notes",
		Content:    "we shipped",
		PublishNow: true,
	})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)

	got, err := svc.GetPublished(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch notes", got.Title)
}

func TestBlogUpdateTogglesPublication(t *testing.T) {
	_, svc := newBlogFixture()

	post, err := svc.Create(context.Background(), uuid.New(), dto.CreateBlogPostRequest{
		Title:      "Launch notes",
		Content:    "we shipped",
		PublishNow: true,
	})
	require.NoError(t, err)

	unpublish := false
	updated, err := svc.Update(context.Background(), post.ID, dto.UpdateBlogPostRequest{Published: &unpublish})
	require.NoError(t, err)
	assert.Nil(t, updated.PublishedAt)

	_, err = svc.GetPublished(context.Background(), post.ID)
	assert.Error(t, err)
}

func TestBlogListPagination(t *testing.T) {
	_, svc := newBlogFixture()

	for i := 0; i < 7; i++ {
		_, err := svc.Create(context.Background(), uuid.New(), dto.CreateBlogPostRequest{
			Title:      "Post",
			Content:    "body",
			PublishNow: true,
		})
		require.NoError(t, err)
	}

	page1, err := svc.ListPublished(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Len(t, page1.Posts, 5)
	assert.Equal(t, 2, page1.TotalPages)

	page2, err := svc.ListPublished(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Len(t, page2.Posts, 2)
}

func TestBlogDeleteUnknown(t *testing.T) {
	_, svc := newBlogFixture()

	err := svc.Delete(context.Background(), 5)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}
