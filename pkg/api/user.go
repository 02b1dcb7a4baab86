package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parsa-mehek/LinkingLink-client/internal/models"
	"github.com/parsa-mehek/LinkingLink-client/internal/server"
)

const msgInvalidCredentials = "неверный идентификатор пользователя или пароль"

type UserService interface {
	CreateUser(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	CheckCredentials(ctx context.Context, userID string, password string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

func (h *Handler) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})

		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	switch {
	case errors.Is(err, server.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

		return
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	case err != nil:
		h.logger.Errorf("Ошибка при регистрации пользователя: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ошибка при регистрации пользователя"})

		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *Handler) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})

		return
	}

	user, err := h.userService.CheckCredentials(c.Request.Context(), req.UserID, req.Password)
	switch {
	case errors.Is(err, server.ErrUserNotFound), errors.Is(err, server.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidCredentials})

		return
	case err != nil:
		h.logger.Errorf("Ошибка при проверке учетных данных: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ошибка при входе"})

		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *Handler) respondWithToken(c *gin.Context, status int, user *models.User) {
	userID, ok := user.ID.Int64()
	if !ok {
		h.logger.Errorf("Некорректный идентификатор пользователя %q", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ошибка при выпуске токена"})

		return
	}

	token, err := h.tokenManager.GenerateToken(userID, h.tokenTTL)
	if err != nil {
		h.logger.Errorf("Ошибка при выпуске токена: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ошибка при выпуске токена"})

		return
	}

	c.JSON(status, models.AuthResponse{AccessToken: token, User: user})
}

func (h *Handler) me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "пользователь не авторизован"})

		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	switch {
	case errors.Is(err, server.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

		return
	case err != nil:
		h.logger.Errorf("Ошибка при получении профиля: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ошибка при получении профиля"})

		return
	}

	c.JSON(http.StatusOK, models.MeResponse{User: *user})
}

func (h *Handler) logout(c *gin.Context) {
	if claims, ok := getClaims(c); ok {
		h.tokenManager.Revoke(claims)
	}

	c.Status(http.StatusNoContent)
}
