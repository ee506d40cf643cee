package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/QuincyForbes/thread-chat-backend/internal/chat"
	"github.com/QuincyForbes/thread-chat-backend/internal/config"
	"github.com/QuincyForbes/thread-chat-backend/internal/reply"
	"github.com/QuincyForbes/thread-chat-backend/internal/store/rabbitmq"
	"github.com/QuincyForbes/thread-chat-backend/internal/store/redisstore"
)

type Handler struct {
	Svc   *chat.Service
	Redis *redisstore.Store
	Pub   *rabbitmq.Publisher
}

// NewHandler wires the chat service from the database and the configured
// reply generator. Redis and the publisher may be nil; the endpoints that
// need them degrade instead of failing at startup.
func NewHandler(db *gorm.DB, cfg config.Config, rds *redisstore.Store, pub *rabbitmq.Publisher) *Handler {
	var gen reply.Generator
	switch strings.ToLower(cfg.ReplyProvider) {
	case "", "random":
		gen = reply.NewRandom()
	case "echo":
		gen = reply.NewEcho()
	default:
		panic(fmt.Sprintf("unsupported REPLY_PROVIDER=%q", cfg.ReplyProvider))
	}

	svc := chat.NewService(chat.NewRepo(db), gen)
	return &Handler{Svc: svc, Redis: rds, Pub: pub}
}

func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
