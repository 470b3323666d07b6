package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"
	"github.com/sm8ta/webike_rental_service/internal/core/ports"
	"github.com/sm8ta/webike_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService *services.BookingService
	logger         ports.LoggerPort
	metrics        ports.MetricsPort
}

type BookingRequest struct {
	BikeID    string `json:"bikeId" binding:"required" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	StartDate string `json:"startDate" binding:"required" example:"2025-06-01"`
	EndDate   string `json:"endDate" binding:"required" example:"2025-06-03"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required" example:"confirmed"`
}

type BookingResponse struct {
	Success bool            `json:"success" example:"true"`
	Booking *domain.Booking `json:"booking"`
}

func NewBookingHandler(
	bookingService *services.BookingService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
		metrics:        metrics,
	}
}

// parseDate accepts a calendar date only; bookings are stored at day granularity.
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// @Summary Забронировать байк
// @Description Создание бронирования для доступного байка
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body BookingRequest true "Данные бронирования"
// @Success 201 {object} BookingResponse "Бронирование создано"
// @Failure 400 {object} errorResponse "Байк недоступен или неверные данные"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 404 {object} errorResponse "Байк не найден"
// @Router /api/booking/book [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		h.logger.Warn("Unauthorized access attempt to CreateBooking", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed JSON parse in create booking", map[string]interface{}{
			"error":   err.Error(),
			"user_id": payload.UserID,
		})
		handleBindError(c, err)
		return
	}

	startDate, ok := parseDate(req.StartDate)
	if !ok {
		newErrorResponse(c, http.StatusBadRequest, "Invalid startDate")
		return
	}
	endDate, ok := parseDate(req.EndDate)
	if !ok {
		newErrorResponse(c, http.StatusBadRequest, "Invalid endDate")
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), payload.UserID, req.BikeID, startDate, endDate)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, BookingResponse{
		Success: true,
		Booking: booking,
	})
}

// @Summary Мои бронирования
// @Description Бронирования текущего пользователя с данными байка
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Booking "Список бронирований"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Router /api/booking/myBooking [get]
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		h.logger.Warn("Unauthorized access attempt to GetMyBookings", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookings, err := h.bookingService.GetMyBookings(c.Request.Context(), payload.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary Отменить бронирование
// @Description Отмена своего бронирования, байк снова доступен
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID бронирования"
// @Success 200 {object} messageResponse "Бронирование отменено"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 403 {object} errorResponse "Чужое бронирование"
// @Failure 404 {object} errorResponse "Бронирование не найдено"
// @Router /api/booking/{id} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	bookingID := c.Param("id")

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		h.logger.Warn("Unauthorized access attempt to CancelBooking", map[string]interface{}{
			"booking_id": bookingID,
			"ip":         c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.bookingService.CancelBooking(c.Request.Context(), payload.UserID, bookingID); err != nil {
		handleError(c, err)
		return
	}

	newMessageResponse(c, http.StatusOK, "Booking cancelled")
}

// @Summary Все бронирования
// @Description Все бронирования с пользователем и байком, новые первыми (только админ)
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Booking "Список бронирований"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 403 {object} errorResponse "Доступ запрещен"
// @Router /api/booking/all [get]
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	bookings, err := h.bookingService.GetAllBookings(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary Изменить статус бронирования
// @Description pending, confirmed или cancelled (только админ)
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID бронирования"
// @Param request body UpdateBookingStatusRequest true "Новый статус"
// @Success 200 {object} BookingResponse "Статус обновлен"
// @Failure 400 {object} errorResponse "Неверный статус"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 403 {object} errorResponse "Доступ запрещен"
// @Failure 404 {object} errorResponse "Бронирование не найдено"
// @Router /api/booking/{id}/status [put]
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	bookingID := c.Param("id")

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	booking, err := h.bookingService.UpdateBookingStatus(c.Request.Context(), bookingID, domain.BookingStatus(req.Status))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, BookingResponse{
		Success: true,
		Booking: booking,
	})
}
