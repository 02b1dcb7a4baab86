package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parsa-mehek/LinkingLink-client/internal/auth"
	"github.com/parsa-mehek/LinkingLink-client/pkg/logger"
)

const (
	DefaultTokenDuration = 24 * time.Hour

	headerRequestID = "X-Request-ID"
	bearerPrefix    = "Bearer "

	ctxUserID = "user_id"
	ctxClaims = "claims"
)

type Handler struct {
	tokenManager    auth.TokenManager
	userService     UserService
	progressService ProgressService
	tokenTTL        time.Duration
	logger          logger.Logger
}

func NewHandler(
	tokenManager auth.TokenManager,
	userService UserService,
	progressService ProgressService,
	tokenTTL time.Duration,
	logger logger.Logger,
) *Handler {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenDuration
	}

	return &Handler{
		tokenManager:    tokenManager,
		userService:     userService,
		progressService: progressService,
		tokenTTL:        tokenTTL,
		logger:          logger,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(h.loggerMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.register)
			authGroup.POST("/login", h.login)
			authGroup.GET("/me", h.authMiddleware(), h.me)
			authGroup.POST("/logout", h.authMiddleware(), h.logout)
		}

		progress := api.Group("/progress", h.authMiddleware())
		{
			progress.GET("", h.listProgress)
			progress.POST("", h.addProgress)
		}
	}

	return router
}

func (h *Handler) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(headerRequestID, requestID)

		start := time.Now()
		h.logger.Infof("Request [%s]: %s %s", requestID, c.Request.Method, c.Request.URL.Path)
		c.Next()
		h.logger.Infof("Response [%s]: %d за %s", requestID, c.Writer.Status(), time.Since(start))
	}
}

func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "отсутствует токен авторизации"})

			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))

		claims, err := h.tokenManager.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

func getUserID(c *gin.Context) (int64, bool) {
	userID, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}

	id, ok := userID.(int64)

	return id, ok
}

func getClaims(c *gin.Context) (*auth.UserClaims, bool) {
	value, ok := c.Get(ctxClaims)
	if !ok {
		return nil, false
	}

	claims, ok := value.(*auth.UserClaims)

	return claims, ok
}
