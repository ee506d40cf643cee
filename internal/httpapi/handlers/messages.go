package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/QuincyForbes/thread-chat-backend/internal/store/rabbitmq"
)

type createMessageReq struct {
	ThreadID *uint64 `json:"thread_id"`
	UserID   uint64  `json:"user_id" binding:"required"`
	Message  string  `json:"message" binding:"required"`
}

// CreateMessage stores the user's message plus a generated system reply and
// responds with the reply. A null thread_id starts a new thread for the user.
func (h *Handler) CreateMessage(c *gin.Context) {
	var req createMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and message are required"})
		return
	}

	userMsg, sysMsg, err := h.Svc.PostMessage(c.Request.Context(), req.ThreadID, req.UserID, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to create message"})
		return
	}

	// Best effort: stats events never affect the stored result.
	if h.Pub != nil {
		ev := rabbitmq.MessagePostedEvent{
			ThreadID:       sysMsg.ThreadID,
			UserID:         req.UserID,
			UserMessageID:  userMsg.ID,
			ReplyMessageID: sysMsg.ID,
			PostedAt:       time.Now().UTC(),
		}
		if err := h.Pub.PublishMessagePosted(c.Request.Context(), ev); err != nil {
			log.Printf("publish message event: %v", err)
		}
	}

	c.JSON(http.StatusCreated, sysMsg)
}

// ListMessages returns a thread's messages in creation order; an empty
// thread maps to 404 for compatibility with the original API.
func (h *Handler) ListMessages(c *gin.Context) {
	threadID, err := strconv.ParseUint(c.Query("thread_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thread_id query parameter is required"})
		return
	}

	msgs, err := h.Svc.ListMessages(c.Request.Context(), threadID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if len(msgs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no messages found for this thread"})
		return
	}
	c.JSON(http.StatusOK, msgs)
}
