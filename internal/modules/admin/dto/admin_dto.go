package dto

type NovelTitleResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type CreateNovelRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	AuthorName  string `json:"authorName"`
	Description string `json:"description"`
}

type CreateChapterRequest struct {
	Title         string `json:"title"`
	ChapterNumber int    `json:"chapterNumber" binding:"required,min=1"`
}

type SegmentInput struct {
	SegmentIndex *int   `json:"segmentIndex" binding:"required,gte=0"`
	SegmentType  string `json:"segmentType" binding:"required"`
	TextContent  string `json:"textContent"`
}

type ReplaceSegmentsRequest struct {
	Segments []SegmentInput `json:"segments" binding:"required,min=1,dive"`
}
