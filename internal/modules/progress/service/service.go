package progress

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
	novelRepo "kweezy.app/server/internal/modules/novel/repository"
	progressDto "kweezy.app/server/internal/modules/progress/dto"
	progressRepo "kweezy.app/server/internal/modules/progress/repository"
	"kweezy.app/server/pkg/apperror"
)

// ProgressService is the server half of reading progress: an authoritative
// upsert-only record per (user, novel). The client keeps its own local scroll
// cache and never reads this record back mid-session; other devices do.
type ProgressService interface {
	GetProgress(ctx context.Context, userID uuid.UUID, novelID int64) (*progressDto.ProgressResponse, error)
	UpsertProgress(ctx context.Context, userID uuid.UUID, novelID int64, req progressDto.UpsertProgressRequest) (*progressDto.ProgressResponse, error)
}

type progressService struct {
	repo      progressRepo.ProgressRepository
	novelRepo novelRepo.NovelRepository
}

func NewProgressService(repo progressRepo.ProgressRepository, novelRepo novelRepo.NovelRepository) ProgressService {
	return &progressService{
		repo:      repo,
		novelRepo: novelRepo,
	}
}

// GetProgress returns nil (not an error) when no progress has been saved yet.
func (s *progressService) GetProgress(ctx context.Context, userID uuid.UUID, novelID int64) (*progressDto.ProgressResponse, error) {
	progress, err := s.repo.Find(ctx, userID, novelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toProgressResponse(progress), nil
}

func (s *progressService) UpsertProgress(ctx context.Context, userID uuid.UUID, novelID int64, req progressDto.UpsertProgressRequest) (*progressDto.ProgressResponse, error) {
	chapter, err := s.novelRepo.FindChapterByID(ctx, req.LastReadChapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Invalid("Invalid chapter ID for this novel.")
		}
		return nil, err
	}
	if chapter.NovelID != novelID {
		return nil, apperror.Invalid("Invalid chapter ID for this novel.")
	}

	progress := &entity.ReadingProgress{
		UserID:            userID,
		NovelID:           novelID,
		LastReadChapterID: req.LastReadChapterID,
		LastReadScrollY:   *req.LastReadScrollY,
	}
	if err := s.repo.Upsert(ctx, progress); err != nil {
		return nil, err
	}

	// Reload so the chapter number reflects what was stored
	stored, err := s.repo.Find(ctx, userID, novelID)
	if err != nil {
		return nil, err
	}
	return toProgressResponse(stored), nil
}

func toProgressResponse(p *entity.ReadingProgress) *progressDto.ProgressResponse {
	return &progressDto.ProgressResponse{
		UserID:            p.UserID,
		NovelID:           p.NovelID,
		LastReadChapterID: p.LastReadChapterID,
		LastReadScrollY:   p.LastReadScrollY,
		Chapter:           progressDto.ChapterRef{ChapterNumber: p.Chapter.ChapterNumber},
		UpdatedAt:         p.UpdatedAt,
	}
}
