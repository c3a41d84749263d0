package handlers

import (
	"errors"
	"net/http"

	"github.com/Dhoini/CRM-service/internal/domain"
	"github.com/Dhoini/CRM-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// respondError переводит ошибки сервисного слоя в HTTP-ответ.
// Валидация и "не найдено" означают, что состояние не изменилось;
// ошибка хранилища означает, что транзакция операции была откачена.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var verr domain.ValidationErrors
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  verr.Error(),
			"fields": verr,
		})
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if errors.Is(err, domain.ErrStorage) {
		log.Error("Storage failure: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure, operation was rolled back"})
		return
	}

	log.Error("Unexpected error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
