package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"kweezy.app/server/internal/entity"
	"kweezy.app/server/internal/modules/admin/dto"
	novelRepo "kweezy.app/server/internal/modules/novel/repository"
	search "kweezy.app/server/internal/modules/search/service"
	"kweezy.app/server/pkg/apperror"
	"kweezy.app/server/pkg/storage"
)

const maxCoverSize = 2 << 20 // 2MB

// AdminService covers catalog management: novels, chapters, segment
// replacement and cover uploads. All operations assume the caller already
// passed the admin middleware.
type AdminService interface {
	ListNovels(ctx context.Context) ([]entity.Novel, error)
	ListNovelTitles(ctx context.Context) ([]dto.NovelTitleResponse, error)
	CreateNovel(ctx context.Context, req dto.CreateNovelRequest) (*entity.Novel, error)
	UpdateNovel(ctx context.Context, novelID int64, req dto.CreateNovelRequest) (*entity.Novel, error)
	DeleteNovel(ctx context.Context, novelID int64) error
	UploadCover(ctx context.Context, novelID int64, fileHeader *multipart.FileHeader) (*entity.Novel, error)

	CreateChapter(ctx context.Context, novelID int64, req dto.CreateChapterRequest) (*entity.Chapter, error)
	DeleteChapter(ctx context.Context, novelID int64, chapterNumber int) error
	ReplaceSegments(ctx context.Context, novelID int64, chapterNumber int, req dto.ReplaceSegmentsRequest) ([]entity.Segment, error)
}

type adminService struct {
	novels  novelRepo.NovelRepository
	storage storage.ImageStorage
	search  search.SearchService
}

func NewAdminService(novels novelRepo.NovelRepository, imageStorage storage.ImageStorage, searchSvc search.SearchService) AdminService {
	return &adminService{
		novels:  novels,
		storage: imageStorage,
		search:  searchSvc,
	}
}

func (s *adminService) ListNovels(ctx context.Context) ([]entity.Novel, error) {
	return s.novels.FindAllWithChapters(ctx)
}

// ListNovelTitles is the lightweight picker variant of ListNovels: ids and
// titles only, no chapters.
func (s *adminService) ListNovelTitles(ctx context.Context) ([]dto.NovelTitleResponse, error) {
	novels, err := s.novels.ListTitles(ctx)
	if err != nil {
		return nil, err
	}

	titles := make([]dto.NovelTitleResponse, 0, len(novels))
	for _, n := range novels {
		titles = append(titles, dto.NovelTitleResponse{ID: n.ID, Title: n.Title})
	}
	return titles, nil
}

func (s *adminService) CreateNovel(ctx context.Context, req dto.CreateNovelRequest) (*entity.Novel, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Invalid("Title must not be empty.")
	}

	if _, err := s.novels.FindByTitle(ctx, title); err == nil {
		return nil, apperror.Conflict("A novel with this title already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	novel := &entity.Novel{
		Title:       title,
		AuthorName:  strings.TrimSpace(req.AuthorName),
		Description: req.Description,
	}
	if err := s.novels.Create(ctx, novel); err != nil {
		return nil, err
	}

	s.indexNovel(novel)
	return novel, nil
}

func (s *adminService) UpdateNovel(ctx context.Context, novelID int64, req dto.CreateNovelRequest) (*entity.Novel, error) {
	novel, err := s.novels.FindByID(ctx, novelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Novel not found.")
		}
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Invalid("Title must not be empty.")
	}
	if title != novel.Title {
		if _, err := s.novels.FindByTitle(ctx, title); err == nil {
			return nil, apperror.Conflict("A novel with this title already exists.")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	novel.Title = title
	novel.AuthorName = strings.TrimSpace(req.AuthorName)
	novel.Description = req.Description
	if err := s.novels.Update(ctx, novel); err != nil {
		return nil, err
	}

	s.indexNovel(novel)
	return novel, nil
}

func (s *adminService) DeleteNovel(ctx context.Context, novelID int64) error {
	novel, err := s.novels.FindByID(ctx, novelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Novel not found.")
		}
		return err
	}

	affected, err := s.novels.Delete(ctx, novelID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("Novel not found.")
	}

	if novel.CoverImageURL != nil && s.storage != nil {
		if err := s.storage.DeleteImage(ctx, *novel.CoverImageURL); err != nil {
			log.Printf("Failed to delete cover for novel %d: %v", novelID, err)
		}
	}
	if s.search != nil {
		if err := s.search.DeleteNovel(novelID); err != nil {
			log.Printf("Failed to remove novel %d from search index: %v", novelID, err)
		}
	}
	return nil
}

func (s *adminService) UploadCover(ctx context.Context, novelID int64, fileHeader *multipart.FileHeader) (*entity.Novel, error) {
	novel, err := s.novels.FindByID(ctx, novelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Novel not found.")
		}
		return nil, err
	}

	if fileHeader == nil {
		return nil, apperror.Invalid("Cover image file is required.")
	}
	if fileHeader.Size > maxCoverSize {
		return nil, apperror.Invalid("Cover image must be 2MB or smaller.")
	}
	if ct := fileHeader.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return nil, apperror.Invalid("Cover must be an image file.")
	}
	if s.storage == nil {
		return nil, fmt.Errorf("image storage is not configured")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	url, err := s.storage.UploadImage(ctx, file, "covers", fileHeader.Filename)
	if err != nil {
		return nil, err
	}

	oldURL := novel.CoverImageURL
	novel.CoverImageURL = &url
	if err := s.novels.Update(ctx, novel); err != nil {
		return nil, err
	}

	// Replaced cover is orphaned in storage; removal failure is not fatal
	if oldURL != nil && *oldURL != url {
		if err := s.storage.DeleteImage(ctx, *oldURL); err != nil {
			log.Printf("Failed to delete previous cover for novel %d: %v", novelID, err)
		}
	}

	return novel, nil
}

func (s *adminService) CreateChapter(ctx context.Context, novelID int64, req dto.CreateChapterRequest) (*entity.Chapter, error) {
	if _, err := s.novels.FindByID(ctx, novelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Novel not found.")
		}
		return nil, err
	}

	if _, err := s.novels.FindChapterByNumber(ctx, novelID, req.ChapterNumber); err == nil {
		return nil, apperror.Conflict(fmt.Sprintf("Chapter number %d already exists for this novel.", req.ChapterNumber))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	chapter := &entity.Chapter{
		NovelID:       novelID,
		ChapterNumber: req.ChapterNumber,
		Title:         strings.TrimSpace(req.Title),
	}
	if err := s.novels.CreateChapter(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *adminService) DeleteChapter(ctx context.Context, novelID int64, chapterNumber int) error {
	chapter, err := s.novels.FindChapterByNumber(ctx, novelID, chapterNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Chapter not found.")
		}
		return err
	}

	affected, err := s.novels.DeleteChapter(ctx, chapter.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("Chapter not found.")
	}
	return nil
}

func (s *adminService) ReplaceSegments(ctx context.Context, novelID int64, chapterNumber int, req dto.ReplaceSegmentsRequest) ([]entity.Segment, error) {
	chapter, err := s.novels.FindChapterByNumber(ctx, novelID, chapterNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Chapter not found.")
		}
		return nil, err
	}

	if len(req.Segments) == 0 {
		return nil, apperror.Invalid("At least one segment is required.")
	}

	segments := make([]entity.Segment, 0, len(req.Segments))
	seen := make(map[int]bool, len(req.Segments))
	for _, in := range req.Segments {
		if in.SegmentIndex == nil {
			return nil, apperror.Invalid("Each segment needs a segmentIndex.")
		}
		if seen[*in.SegmentIndex] {
			return nil, apperror.Invalid(fmt.Sprintf("Duplicate segment index %d.", *in.SegmentIndex))
		}
		seen[*in.SegmentIndex] = true
		segments = append(segments, entity.Segment{
			ChapterID:    chapter.ID,
			SegmentIndex: *in.SegmentIndex,
			SegmentType:  in.SegmentType,
			TextContent:  in.TextContent,
		})
	}

	if err := s.novels.ReplaceSegments(ctx, chapter.ID, segments); err != nil {
		return nil, err
	}

	return s.novels.FindSegments(ctx, chapter.ID)
}

func (s *adminService) indexNovel(novel *entity.Novel) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexNovel(novel); err != nil {
		log.Printf("Failed to index novel %d: %v", novel.ID, err)
	}
}
