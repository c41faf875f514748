package blog

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
	blogDto "kweezy.app/server/internal/modules/blog/dto"
	blogRepo "kweezy.app/server/internal/modules/blog/repository"
	search "kweezy.app/server/internal/modules/search/service"
	"kweezy.app/server/pkg/apperror"
)

type BlogService interface {
	ListPublished(ctx context.Context, page, limit int) (*blogDto.PaginatedBlogResponse, error)
	GetPublished(ctx context.Context, postID int64) (*blogDto.BlogPostResponse, error)
	Create(ctx context.Context, authorID uuid.UUID, req blogDto.CreateBlogPostRequest) (*blogDto.BlogPostResponse, error)
	Update(ctx context.Context, postID int64, req blogDto.UpdateBlogPostRequest) (*blogDto.BlogPostResponse, error)
	Delete(ctx context.Context, postID int64) error
}

type blogService struct {
	repo   blogRepo.BlogRepository
	search search.SearchService
}

func NewBlogService(repo blogRepo.BlogRepository, searchService search.SearchService) BlogService {
	return &blogService{
		repo:   repo,
		search: searchService,
	}
}

func (s *blogService) ListPublished(ctx context.Context, page, limit int) (*blogDto.PaginatedBlogResponse, error) {
	posts, total, err := s.repo.FindPublished(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	items := make([]blogDto.BlogPostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, toBlogResponse(&posts[i]))
	}

	return &blogDto.PaginatedBlogResponse{
		Posts:       items,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
	}, nil
}

func (s *blogService) GetPublished(ctx context.Context, postID int64) (*blogDto.BlogPostResponse, error) {
	post, err := s.repo.FindPublishedByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Blog post not found or not published.")
		}
		return nil, err
	}

	resp := toBlogResponse(post)
	return &resp, nil
}

func (s *blogService) Create(ctx context.Context, authorID uuid.UUID, req blogDto.CreateBlogPostRequest) (*blogDto.BlogPostResponse, error) {
	post := &entity.BlogPost{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if req.PublishNow {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	post, err := s.repo.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	s.indexAsync(post)

	resp := toBlogResponse(post)
	return &resp, nil
}

func (s *blogService) Update(ctx context.Context, postID int64, req blogDto.UpdateBlogPostRequest) (*blogDto.BlogPostResponse, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Blog post not found.")
		}
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Published != nil {
		if *req.Published && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		} else if !*req.Published {
			post.PublishedAt = nil
		}
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	s.indexAsync(post)

	resp := toBlogResponse(post)
	return &resp, nil
}

func (s *blogService) Delete(ctx context.Context, postID int64) error {
	affected, err := s.repo.Delete(ctx, postID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("Blog post not found.")
	}

	if s.search != nil {
		if err := s.search.DeleteBlogPost(postID); err != nil {
			log.Printf("failed to remove blog post %d from search index: %v", postID, err)
		}
	}
	return nil
}

func (s *blogService) indexAsync(post *entity.BlogPost) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexBlogPost(post); err != nil {
		log.Printf("failed to index blog post %d: %v", post.ID, err)
	}
}

func toBlogResponse(post *entity.BlogPost) blogDto.BlogPostResponse {
	return blogDto.BlogPostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		Author:      blogDto.BlogAuthor{Username: post.Author.Username},
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}
