package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	comment "kweezy.app/server/internal/modules/comment/service"
	"kweezy.app/server/pkg/apperror"
	"kweezy.app/server/pkg/response"
)

// LiveCommentHandler streams a segment's newly created comments over a
// websocket, fed by the redis channel the comment service publishes to.
type LiveCommentHandler struct {
	redisClient *redis.Client
	upgrader    websocket.Upgrader
}

func NewLiveCommentHandler(redisClient *redis.Client) *LiveCommentHandler {
	return &LiveCommentHandler{
		redisClient: redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for now
			},
		},
	}
}

func (h *LiveCommentHandler) Subscribe(c *gin.Context) {
	segmentID, err := strconv.ParseInt(c.Param("segmentId"), 10, 64)
	if err != nil || segmentID < 1 {
		response.ResponseError(c, apperror.Invalid("Segment ID must be a positive integer."))
		return
	}

	if h.redisClient == nil {
		response.ResponseError(c, apperror.New(http.StatusServiceUnavailable, "Live comments are not available.", apperror.ErrInternal))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sub := h.redisClient.Subscribe(c.Request.Context(), comment.LiveChannel(segmentID))
	defer sub.Close()

	// Drain client frames so we notice the peer going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
