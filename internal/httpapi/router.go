package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/QuincyForbes/thread-chat-backend/internal/config"
	"github.com/QuincyForbes/thread-chat-backend/internal/httpapi/handlers"
	"github.com/QuincyForbes/thread-chat-backend/internal/httpapi/middleware"
	"github.com/QuincyForbes/thread-chat-backend/internal/store/rabbitmq"
	"github.com/QuincyForbes/thread-chat-backend/internal/store/redisstore"
)

func NewRouter(db *gorm.DB, cfg config.Config, rds *redisstore.Store, pub *rabbitmq.Publisher) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	// Open CORS, same as the original deployment.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"*"}
	corsCfg.AllowCredentials = false
	r.Use(cors.New(corsCfg))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	h := handlers.NewHandler(db, cfg, rds, pub)

	r.GET("/ping", h.Ping)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/users", h.CreateUser)
		v1.GET("/users", h.ListUsers)
		v1.POST("/messages", h.CreateMessage)
		v1.GET("/messages", h.ListMessages)
		v1.GET("/threads", h.ListThreads)
		v1.GET("/stats", h.Stats)
	}

	return r
}
