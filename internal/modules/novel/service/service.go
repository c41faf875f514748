package novel

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
	novelDto "kweezy.app/server/internal/modules/novel/dto"
	novelRepo "kweezy.app/server/internal/modules/novel/repository"
	progressDto "kweezy.app/server/internal/modules/progress/dto"
	progressRepo "kweezy.app/server/internal/modules/progress/repository"
	"kweezy.app/server/pkg/apperror"
)

// NovelService serves the public read side: novel listings, the novel detail
// view (with the viewer's progress when authenticated) and chapter segments.
type NovelService interface {
	ListNovels(ctx context.Context) ([]novelDto.NovelListItem, error)
	GetNovel(ctx context.Context, novelID int64, viewerID *uuid.UUID) (*novelDto.NovelDetailResponse, error)
	GetChapterSegments(ctx context.Context, chapterID int64) ([]novelDto.SegmentResponse, error)
}

type novelService struct {
	repo         novelRepo.NovelRepository
	progressRepo progressRepo.ProgressRepository
}

func NewNovelService(repo novelRepo.NovelRepository, progressRepo progressRepo.ProgressRepository) NovelService {
	return &novelService{
		repo:         repo,
		progressRepo: progressRepo,
	}
}

func (s *novelService) ListNovels(ctx context.Context) ([]novelDto.NovelListItem, error) {
	novels, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]novelDto.NovelListItem, 0, len(novels))
	for _, n := range novels {
		items = append(items, novelDto.NovelListItem{
			ID:            n.ID,
			Title:         n.Title,
			AuthorName:    n.AuthorName,
			Description:   n.Description,
			CoverImageURL: n.CoverImageURL,
			CreatedAt:     n.CreatedAt,
		})
	}
	return items, nil
}

func (s *novelService) GetNovel(ctx context.Context, novelID int64, viewerID *uuid.UUID) (*novelDto.NovelDetailResponse, error) {
	novel, err := s.repo.FindByIDWithChapters(ctx, novelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Novel not found.")
		}
		return nil, err
	}

	chapters := make([]novelDto.ChapterListItem, 0, len(novel.Chapters))
	for _, ch := range novel.Chapters {
		chapters = append(chapters, novelDto.ChapterListItem{
			ID:            ch.ID,
			Title:         ch.Title,
			ChapterNumber: ch.ChapterNumber,
		})
	}

	resp := &novelDto.NovelDetailResponse{
		ID:            novel.ID,
		Title:         novel.Title,
		AuthorName:    novel.AuthorName,
		Description:   novel.Description,
		CoverImageURL: novel.CoverImageURL,
		Chapters:      chapters,
		UserProgress:  nil,
	}

	// userProgress stays null for anonymous viewers and for viewers with no
	// saved progress; absence is not an error.
	if viewerID != nil {
		progress, err := s.progressRepo.Find(ctx, *viewerID, novelID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if progress != nil {
			resp.UserProgress = toProgressResponse(progress)
		}
	}

	return resp, nil
}

func (s *novelService) GetChapterSegments(ctx context.Context, chapterID int64) ([]novelDto.SegmentResponse, error) {
	if _, err := s.repo.FindChapterByID(ctx, chapterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Chapter not found.")
		}
		return nil, err
	}

	segments, err := s.repo.FindSegments(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	items := make([]novelDto.SegmentResponse, 0, len(segments))
	for _, seg := range segments {
		items = append(items, novelDto.SegmentResponse{
			ID:           seg.ID,
			SegmentIndex: seg.SegmentIndex,
			SegmentType:  seg.SegmentType,
			TextContent:  seg.TextContent,
		})
	}
	return items, nil
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
