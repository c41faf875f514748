package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	commentDto "kweezy.app/server/internal/modules/comment/dto"
	comment "kweezy.app/server/internal/modules/comment/service"
	"kweezy.app/server/pkg/apperror"
	"kweezy.app/server/pkg/response"
	"kweezy.app/server/pkg/validator"
)

type CommentHandler struct {
	service comment.CommentService
}

func NewCommentHandler(service comment.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	segmentID, err := strconv.ParseInt(c.Param("segmentId"), 10, 64)
	if err != nil || segmentID < 1 {
		response.ResponseError(c, apperror.Invalid("Segment ID must be a positive integer."))
		return
	}

	var query commentDto.ListCommentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.ListComments(c.Request.Context(), segmentID, response.OptionalUserID(c), query.Page, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
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

	var req commentDto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validator.FormatValidationError(err)})
		return
	}

	created, err := h.service.CreateComment(c.Request.Context(), segmentID, userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *CommentHandler) ToggleLike(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil || commentID < 1 {
		response.ResponseError(c, apperror.Invalid("Comment ID must be a positive integer."))
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	liked, likeCount, err := h.service.ToggleLike(c.Request.Context(), commentID, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if liked {
		c.JSON(http.StatusCreated, gin.H{"message": "Comment liked.", "likeCount": likeCount})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Comment unliked.", "likeCount": likeCount})
	}
}
