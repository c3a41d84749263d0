package handlers

import (
	"net/http"

	"github.com/Dhoini/CRM-service/internal/service"
	"github.com/Dhoini/CRM-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ReportHandler обработчик отчетов и статистики
type ReportHandler struct {
	service service.ReportService
	log     *logger.Logger
}

// NewReportHandler создает новый обработчик отчетов
func NewReportHandler(svc service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: svc,
		log:     log,
	}
}

// GetReport строит отчет за период регистрации клиентов.
// Параметры: start_date, end_date (ГГГГ-ММ-ДД, обе необязательны).
// Некорректная дата не прерывает построение отчета: фильтр игнорируется,
// а причина возвращается в поле warnings.
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.service.Generate(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetStatistics возвращает сводные счетчики по всей базе
func (h *ReportHandler) GetStatistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
