package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"kweezy.app/server/internal/modules/admin/dto"
	admin "kweezy.app/server/internal/modules/admin/service"
	"kweezy.app/server/pkg/apperror"
	"kweezy.app/server/pkg/response"
	pkgvalidator "kweezy.app/server/pkg/validator"
)

type AdminHandler struct {
	service admin.AdminService
}

func NewAdminHandler(service admin.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) ListNovels(c *gin.Context) {
	novels, err := h.service.ListNovels(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, novels)
}

func (h *AdminHandler) ListNovelTitles(c *gin.Context) {
	titles, err := h.service.ListNovelTitles(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, titles)
}

func (h *AdminHandler) CreateNovel(c *gin.Context) {
	var req dto.CreateNovelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			response.ResponseError(c, apperror.Invalid(pkgvalidator.FormatValidationError(ve)))
			return
		}
		response.ResponseError(c, apperror.Invalid("Invalid request body."))
		return
	}

	novel, err := h.service.CreateNovel(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, novel)
}

func (h *AdminHandler) UpdateNovel(c *gin.Context) {
	novelID, err := strconv.ParseInt(c.Param("novelId"), 10, 64)
	if err != nil {
		response.ResponseError(c, apperror.Invalid("Invalid novel ID."))
		return
	}

	var req dto.CreateNovelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			response.ResponseError(c, apperror.Invalid(pkgvalidator.FormatValidationError(ve)))
			return
		}
		response.ResponseError(c, apperror.Invalid("Invalid request body."))
		return
	}

	novel, err := h.service.UpdateNovel(c.Request.Context(), novelID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, novel)
}

func (h *AdminHandler) DeleteNovel(c *gin.Context) {
	novelID, err := strconv.ParseInt(c.Param("novelId"), 10, 64)
	if err != nil {
		response.ResponseError(c, apperror.Invalid("Invalid novel ID."))
		return
	}

	if err := h.service.DeleteNovel(c.Request.Context(), novelID); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Novel deleted."})
}

func (h *AdminHandler) UploadCover(c *gin.Context) {
	novelID, err := strconv.ParseInt(c.Param("novelId"), 10, 64)
	if err != nil {
		response.ResponseError(c, apperror.Invalid("Invalid novel ID."))
		return
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		response.ResponseError(c, apperror.Invalid("Cover image file is required."))
		return
	}

	novel, err := h.service.UploadCover(c.Request.Context(), novelID, fileHeader)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, novel)
}

func (h *AdminHandler) CreateChapter(c *gin.Context) {
	novelID, err := strconv.ParseInt(c.Param("novelId"), 10, 64)
	if err != nil {
		response.ResponseError(c, apperror.Invalid("Invalid novel ID."))
		return
	}

	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			response.ResponseError(c, apperror.Invalid(pkgvalidator.FormatValidationError(ve)))
			return
		}
		response.ResponseError(c, apperror.Invalid("Invalid request body."))
		return
	}

	chapter, err := h.service.CreateChapter(c.Request.Context(), novelID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chapter)
}

func (h *AdminHandler) DeleteChapter(c *gin.Context) {
	novelID, err := strconv.ParseInt(c.Param("novelId"), 10, 64)
	if err != nil {
		response.ResponseError(c, apperror.Invalid("Invalid novel ID."))
		return
	}
	chapterNumber, err := strconv.Atoi(c.Param("chapterNumber"))
	if err != nil {
		response.ResponseError(c, apperror.Invalid("Invalid chapter number."))
		return
	}

	if err := h.service.DeleteChapter(c.Request.Context(), novelID, chapterNumber); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chapter deleted."})
}

func (h *AdminHandler) ReplaceSegments(c *gin.Context) {
	novelID, err := strconv.ParseInt(c.Param("novelId"), 10, 64)
	if err != nil {
		response.ResponseError(c, apperror.Invalid("Invalid novel ID."))
		return
	}
	chapterNumber, err := strconv.Atoi(c.Param("chapterNumber"))
	if err != nil {
		response.ResponseError(c, apperror.Invalid("Invalid chapter number."))
		return
	}

	var req dto.ReplaceSegmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			response.ResponseError(c, apperror.Invalid(pkgvalidator.FormatValidationError(ve)))
			return
		}
		response.ResponseError(c, apperror.Invalid("Invalid request body."))
		return
	}

	segments, err := h.service.ReplaceSegments(c.Request.Context(), novelID, chapterNumber, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, segments)
}
