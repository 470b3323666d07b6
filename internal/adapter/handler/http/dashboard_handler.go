package http

import (
	"net/http"
	"time"

	"github.com/sm8ta/webike_rental_service/internal/core/ports"
	"github.com/sm8ta/webike_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	metrics          ports.MetricsPort
}

func NewDashboardHandler(dashboardService *services.DashboardService, metrics ports.MetricsPort) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		metrics:          metrics,
	}
}

// @Summary Статистика
// @Description Количество пользователей, байков и бронирований (только админ)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.DashboardStats "Статистика"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 403 {object} errorResponse "Доступ запрещен"
// @Router /api/admin/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
