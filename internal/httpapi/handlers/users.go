package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createUserReq struct {
	Name string `json:"name" binding:"required,max=30"`
}

// CreateUser finds or creates a user by name. Posting an existing name
// returns the existing user, so the endpoint is safe to retry.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required and must be at most 30 characters"})
		return
	}

	user, err := h.Svc.GetOrCreateUser(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ListUsers returns every user. An empty table maps to 404 for
// compatibility with the original API.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no users found"})
		return
	}
	c.JSON(http.StatusOK, users)
}
