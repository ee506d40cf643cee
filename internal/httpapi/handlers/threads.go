package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListThreads returns a user's threads; an empty set maps to 404 for
// compatibility with the original API.
func (h *Handler) ListThreads(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return
	}

	threads, err := h.Svc.ListThreads(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if len(threads) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no threads found for this user"})
		return
	}
	c.JSON(http.StatusOK, threads)
}
