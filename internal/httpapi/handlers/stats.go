package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Stats returns message counters maintained by the stats worker. At least
// one of thread_id / user_id must be given.
func (h *Handler) Stats(c *gin.Context) {
	if h.Redis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stats are not enabled"})
		return
	}

	out := gin.H{}

	if v := c.Query("thread_id"); v != "" {
		threadID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thread_id"})
			return
		}
		n, err := h.Redis.ThreadMessageCount(c.Request.Context(), threadID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		out["thread_id"] = threadID
		out["thread_message_count"] = n
	}

	if v := c.Query("user_id"); v != "" {
		userID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		n, err := h.Redis.UserMessageCount(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		out["user_id"] = userID
		out["user_message_count"] = n
	}

	if len(out) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thread_id or user_id query parameter is required"})
		return
	}

	c.JSON(http.StatusOK, out)
}
