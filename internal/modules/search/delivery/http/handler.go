package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	search "kweezy.app/server/internal/modules/search/service"
	"kweezy.app/server/pkg/apperror"
	"kweezy.app/server/pkg/response"
)

type SearchHandler struct {
	service search.SearchService
}

func NewSearchHandler(service search.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) SearchNovels(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.ResponseError(c, apperror.Invalid("Search query is required."))
		return
	}

	hits, err := h.service.SearchNovels(query, 20)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hits": hits})
}
