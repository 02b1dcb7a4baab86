package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parsa-mehek/LinkingLink-client/internal/models"
)

type ProgressService interface {
	List(ctx context.Context, userID int64) ([]models.ProgressEntry, error)
	Add(ctx context.Context, userID int64, req models.ProgressRequest) (models.ProgressEntry, error)
}

func (h *Handler) listProgress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "пользователь не авторизован"})

		return
	}

	items, err := h.progressService.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorf("Ошибка при получении записей: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ошибка при получении записей"})

		return
	}

	c.JSON(http.StatusOK, models.ProgressList{Items: items})
}

func (h *Handler) addProgress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "пользователь не авторизован"})

		return
	}

	var req models.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})

		return
	}

	entry, err := h.progressService.Add(c.Request.Context(), userID, req)
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	case err != nil:
		h.logger.Errorf("Ошибка при добавлении записи: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ошибка при добавлении записи"})

		return
	}

	c.JSON(http.StatusCreated, models.ProgressCreated{Entry: entry})
}
