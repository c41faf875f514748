package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	novel "kweezy.app/server/internal/modules/novel/service"
	"kweezy.app/server/pkg/apperror"
	"kweezy.app/server/pkg/response"
)

type NovelHandler struct {
	service novel.NovelService
}

func NewNovelHandler(service novel.NovelService) *NovelHandler {
	return &NovelHandler{service: service}
}

func (h *NovelHandler) ListNovels(c *gin.Context) {
	novels, err := h.service.ListNovels(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, novels)
}

func (h *NovelHandler) GetNovel(c *gin.Context) {
	novelID, err := strconv.ParseInt(c.Param("novelId"), 10, 64)
	if err != nil || novelID < 1 {
		response.ResponseError(c, apperror.Invalid("Novel ID must be a positive integer."))
		return
	}

	detail, err := h.service.GetNovel(c.Request.Context(), novelID, response.OptionalUserID(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *NovelHandler) GetChapterSegments(c *gin.Context) {
	chapterID, err := strconv.ParseInt(c.Param("chapterId"), 10, 64)
	if err != nil || chapterID < 1 {
		response.ResponseError(c, apperror.Invalid("Chapter ID must be a positive integer."))
		return
	}

	segments, err := h.service.GetChapterSegments(c.Request.Context(), chapterID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, segments)
}
