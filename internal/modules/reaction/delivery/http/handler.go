package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	reactionDto "kweezy.app/server/internal/modules/reaction/dto"
	reaction "kweezy.app/server/internal/modules/reaction/service"
	"kweezy.app/server/pkg/apperror"
	"kweezy.app/server/pkg/response"
	"kweezy.app/server/pkg/validator"
)

type ReactionHandler struct {
	service reaction.ReactionService
}

func NewReactionHandler(service reaction.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: service}
}

func (h *ReactionHandler) ToggleReaction(c *gin.Context) {
	segmentID, err := strconv.ParseInt(c.Param("segmentId"), 10, 64)
	if err != nil || segmentID < 1 {
		response.ResponseError(c, apperror.Invalid("Segment ID must be a positive integer."))
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req reactionDto.ToggleReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validator.FormatValidationError(err)})
		return
	}

	added, err := h.service.Toggle(c.Request.Context(), segmentID, userID, req.ReactionType)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if added {
		c.JSON(http.StatusCreated, gin.H{"message": "Reaction added."})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Reaction removed."})
	}
}

func (h *ReactionHandler) GetReactions(c *gin.Context) {
	segmentID, err := strconv.ParseInt(c.Param("segmentId"), 10, 64)
	if err != nil || segmentID < 1 {
		response.ResponseError(c, apperror.Invalid("Segment ID must be a positive integer."))
		return
	}

	counts, err := h.service.GetCounts(c.Request.Context(), segmentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}
