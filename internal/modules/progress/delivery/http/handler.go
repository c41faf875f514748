package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	progressDto "kweezy.app/server/internal/modules/progress/dto"
	progress "kweezy.app/server/internal/modules/progress/service"
	"kweezy.app/server/pkg/apperror"
	"kweezy.app/server/pkg/response"
	"kweezy.app/server/pkg/validator"
)

type ProgressHandler struct {
	service progress.ProgressService
}

func NewProgressHandler(service progress.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	novelID, err := strconv.ParseInt(c.Param("novelId"), 10, 64)
	if err != nil || novelID < 1 {
		response.ResponseError(c, apperror.Invalid("Novel ID must be a positive integer."))
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.GetProgress(c.Request.Context(), userID, novelID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	// No saved progress serializes as a JSON null body, not a 404
	c.JSON(http.StatusOK, resp)
}

func (h *ProgressHandler) UpsertProgress(c *gin.Context) {
	novelID, err := strconv.ParseInt(c.Param("novelId"), 10, 64)
	if err != nil || novelID < 1 {
		response.ResponseError(c, apperror.Invalid("Novel ID must be a positive integer."))
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req progressDto.UpsertProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.UpsertProgress(c.Request.Context(), userID, novelID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Progress updated successfully", "progress": resp})
}
