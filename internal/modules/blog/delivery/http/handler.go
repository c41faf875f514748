package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	blogDto "kweezy.app/server/internal/modules/blog/dto"
	blog "kweezy.app/server/internal/modules/blog/service"
	"kweezy.app/server/pkg/apperror"
	"kweezy.app/server/pkg/response"
	"kweezy.app/server/pkg/validator"
)

type BlogHandler struct {
	service blog.BlogService
}

func NewBlogHandler(service blog.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

func (h *BlogHandler) ListPosts(c *gin.Context) {
	var query blogDto.ListBlogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.ListPublished(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BlogHandler) GetPost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil || postID < 1 {
		response.ResponseError(c, apperror.Invalid("Post ID must be a positive integer."))
		return
	}

	post, err := h.service.GetPublished(c.Request.Context(), postID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *BlogHandler) CreatePost(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req blogDto.CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validator.FormatValidationError(err)})
		return
	}

	post, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *BlogHandler) UpdatePost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil || postID < 1 {
		response.ResponseError(c, apperror.Invalid("Post ID must be a positive integer."))
		return
	}

	var req blogDto.UpdateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": validator.FormatValidationError(err)})
		return
	}

	post, err := h.service.Update(c.Request.Context(), postID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *BlogHandler) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil || postID < 1 {
		response.ResponseError(c, apperror.Invalid("Post ID must be a positive integer."))
		return
	}

	if err := h.service.Delete(c.Request.Context(), postID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog post deleted successfully."})
}
