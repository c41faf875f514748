package comment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
	commentDto "kweezy.app/server/internal/modules/comment/dto"
	commentRepo "kweezy.app/server/internal/modules/comment/repository"
	novelRepo "kweezy.app/server/internal/modules/novel/repository"
	"kweezy.app/server/pkg/apperror"
	"kweezy.app/server/pkg/ratelimit"
)

type CommentService interface {
	ListComments(ctx context.Context, segmentID int64, viewerID *uuid.UUID, page, limit int) (*commentDto.PaginatedCommentsResponse, error)
	CreateComment(ctx context.Context, segmentID int64, userID uuid.UUID, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error)
	ToggleLike(ctx context.Context, commentID int64, userID uuid.UUID) (liked bool, likeCount int64, err error)
}

type commentService struct {
	repo        commentRepo.CommentRepository
	novelRepo   novelRepo.NovelRepository
	redisClient *redis.Client
	rateLimit   time.Duration
	randInt     func(n int) int
}

// NewCommentService wires the ranking engine's randomness. Pass nil for
// randInt in production to draw from a non-deterministic source; tests pass a
// seeded function to pin the injection draws.
func NewCommentService(repo commentRepo.CommentRepository, novelRepo novelRepo.NovelRepository, redisClient *redis.Client, rateLimit time.Duration, randInt func(n int) int) CommentService {
	if randInt == nil {
		randInt = rand.IntN
	}

	return &commentService{
		repo:        repo,
		novelRepo:   novelRepo,
		redisClient: redisClient,
		rateLimit:   rateLimit,
		randInt:     randInt,
	}
}

func (s *commentService) ListComments(ctx context.Context, segmentID int64, viewerID *uuid.UUID, page, limit int) (*commentDto.PaginatedCommentsResponse, error) {
	if page < 1 {
		return nil, apperror.Invalid("Page must be a positive integer.")
	}
	if limit < 1 || limit > 50 {
		return nil, apperror.Invalid("Limit must be between 1 and 50.")
	}

	if _, err := s.novelRepo.FindSegmentByID(ctx, segmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Segment not found.")
		}
		return nil, err
	}

	rows, err := s.repo.FindAllBySegment(ctx, segmentID, viewerID)
	if err != nil {
		return nil, err
	}

	comments := make([]commentDto.CommentResponse, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, toCommentResponse(&row.Comment, &row.User, row.LikeCount, row.LikedByViewer))
	}

	total := len(comments)
	comments = rankComments(comments, s.randInt)

	return &commentDto.PaginatedCommentsResponse{
		Comments:    paginate(comments, page, limit),
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
	}, nil
}

func (s *commentService) CreateComment(ctx context.Context, segmentID int64, userID uuid.UUID, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error) {
	text := strings.TrimSpace(req.CommentText)
	if text == "" {
		return nil, apperror.Invalid("Comment text cannot be empty.")
	}
	if utf8.RuneCountInString(text) > 1000 {
		return nil, apperror.Invalid("Comment cannot exceed 1000 characters.")
	}

	if _, err := s.novelRepo.FindSegmentByID(ctx, segmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Segment not found.")
		}
		return nil, err
	}

	if req.ParentCommentID != nil {
		parent, err := s.repo.FindByID(ctx, *req.ParentCommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.Invalid("Invalid parent comment.")
			}
			return nil, err
		}
		// A reply must stay on the same segment as its parent
		if parent.SegmentID != segmentID {
			return nil, apperror.Invalid("Invalid parent comment.")
		}
	}

	allowed, err := ratelimit.CheckAndSet(ctx, s.redisClient, userID, "comment", s.rateLimit)
	if err != nil {
		log.Printf("comment rate limit check failed: %v", err)
	} else if !allowed {
		return nil, apperror.New(429, "You are commenting too fast.", apperror.ErrRateLimitExceeded)
	}

	comment := &entity.Comment{
		SegmentID:       segmentID,
		UserID:          userID,
		CommentText:     text,
		ParentCommentID: req.ParentCommentID,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		// Release the slot so the failed attempt doesn't count
		if clearErr := ratelimit.Clear(ctx, s.redisClient, userID, "comment"); clearErr != nil {
			log.Printf("failed to clear comment rate limit: %v", clearErr)
		}
		return nil, err
	}

	// Reload with user data
	comment, err = s.repo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	resp := toCommentResponse(comment, &comment.User, 0, false)
	s.publishLive(ctx, segmentID, &resp)

	return &resp, nil
}

func (s *commentService) ToggleLike(ctx context.Context, commentID int64, userID uuid.UUID) (bool, int64, error) {
	if _, err := s.repo.FindByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, apperror.NotFound("Comment not found.")
		}
		return false, 0, err
	}

	existing, err := s.repo.FindLike(ctx, userID, commentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, 0, err
	}

	liked := existing == nil
	if existing != nil {
		if err := s.repo.DeleteLike(ctx, existing.ID); err != nil {
			return false, 0, err
		}
	} else {
		like := &entity.CommentLike{UserID: userID, CommentID: commentID}
		if err := s.repo.CreateLike(ctx, like); err != nil {
			return false, 0, err
		}
	}

	count, err := s.repo.CountLikes(ctx, commentID)
	if err != nil {
		return liked, 0, err
	}
	return liked, count, nil
}

// publishLive pushes a freshly created comment onto the segment's live
// channel. Best effort: a redis failure never fails the create.
func (s *commentService) publishLive(ctx context.Context, segmentID int64, comment *commentDto.CommentResponse) {
	if s.redisClient == nil {
		return
	}

	payload, err := json.Marshal(comment)
	if err != nil {
		log.Printf("failed to marshal live comment: %v", err)
		return
	}

	channel := LiveChannel(segmentID)
	if err := s.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("failed to publish live comment to %s: %v", channel, err)
	}
}

// LiveChannel names the redis pub/sub channel carrying a segment's new
// comments.
func LiveChannel(segmentID int64) string {
	return fmt.Sprintf("live:segment:%d", segmentID)
}

func toCommentResponse(c *entity.Comment, u *entity.User, likeCount int64, likedByViewer bool) commentDto.CommentResponse {
	return commentDto.CommentResponse{
		ID:              c.ID,
		CommentText:     c.CommentText,
		ParentCommentID: c.ParentCommentID,
		CreatedAt:       c.CreatedAt,
		User: commentDto.CommentUser{
			ID:            u.ID,
			Username:      u.Username,
			UsernameColor: u.UsernameColor,
		},
		LikeCount:          likeCount,
		LikedByCurrentUser: likedByViewer,
	}
}
