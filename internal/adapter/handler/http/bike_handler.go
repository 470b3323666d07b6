package http

import (
	"net/http"
	"time"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"
	"github.com/sm8ta/webike_rental_service/internal/core/ports"
	"github.com/sm8ta/webike_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type BikeHandler struct {
	bikeService *services.BikeService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

type BikeRequest struct {
	ExternalID int      `json:"external_id" example:"12"`
	Name       string   `json:"name" binding:"required" example:"Vélo de ville confort"`
	Size       string   `json:"size" binding:"required" example:"Moyenne"`
	Type       string   `json:"type" binding:"required" example:"City"`
	Price      float64  `json:"price" example:"15"`
	Images     []string `json:"images"`
	Available  *bool    `json:"available,omitempty" example:"true"`
}

type UpdateBikeRequest struct {
	ExternalID *int     `json:"external_id,omitempty" example:"12"`
	Name       *string  `json:"name,omitempty" example:"Vélo électrique"`
	Size       *string  `json:"size,omitempty" example:"Grand"`
	Type       *string  `json:"type,omitempty" example:"Electric"`
	Price      *float64 `json:"price,omitempty" example:"25"`
	Images     []string `json:"images,omitempty"`
	Available  *bool    `json:"available,omitempty" example:"false"`
}

func NewBikeHandler(
	bikeService *services.BikeService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *BikeHandler {
	return &BikeHandler{
		bikeService: bikeService,
		logger:      logger,
		metrics:     metrics,
	}
}

// bikeType keeps unknown values as-is so validation reports them.
func bikeType(raw string) domain.BikeType {
	if t, ok := domain.ParseBikeType(raw); ok {
		return t
	}
	return domain.BikeType(raw)
}

// @Summary Каталог байков
// @Description Список всех байков
// @Tags bikes
// @Produce json
// @Success 200 {array} domain.Bike "Список байков"
// @Failure 500 {object} errorResponse "Внутренняя ошибка сервера"
// @Router /api/home [get]
func (h *BikeHandler) GetAllBikes(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	bikes, err := h.bikeService.GetAllBikes(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, bikes)
}

// @Summary Получить байк
// @Description Получение информации о байке по ID
// @Tags bikes
// @Produce json
// @Param id query string true "ID байка" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"
// @Success 200 {object} domain.Bike "Байк найден"
// @Failure 404 {object} errorResponse "Байк не найден"
// @Router /api/detailBike [get]
func (h *BikeHandler) GetBike(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	bikeID := c.Query("id")

	bike, err := h.bikeService.GetBikeByID(c.Request.Context(), bikeID)
	if err != nil {
		h.logger.Warn("Failed to get bike", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, bike)
}

// @Summary Создать байк
// @Description Создание нового байка (только админ)
// @Tags bikes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body BikeRequest true "Данные байка"
// @Success 201 {object} domain.Bike "Байк создан"
// @Failure 400 {object} errorResponse "Неверный запрос"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 403 {object} errorResponse "Доступ запрещен"
// @Router /api/addBike [post]
func (h *BikeHandler) CreateBike(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req BikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed JSON parse in create bike", map[string]interface{}{
			"error": err.Error(),
		})
		handleBindError(c, err)
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	bike := &domain.Bike{
		ExternalID: req.ExternalID,
		Name:       req.Name,
		Size:       domain.BikeSize(req.Size),
		Type:       bikeType(req.Type),
		Price:      req.Price,
		Images:     req.Images,
		Available:  available,
	}

	createdBike, err := h.bikeService.CreateBike(c.Request.Context(), bike)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdBike)
}

// @Summary Обновить байк
// @Description Частичное обновление байка (только админ)
// @Tags bikes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID байка" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"
// @Param request body UpdateBikeRequest true "Данные для обновления"
// @Success 200 {object} domain.Bike "Байк обновлен"
// @Failure 400 {object} errorResponse "Неверный запрос"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 403 {object} errorResponse "Доступ запрещен"
// @Failure 404 {object} errorResponse "Байк не найден"
// @Router /api/updateBike/{id} [put]
func (h *BikeHandler) UpdateBike(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	bikeID := c.Param("id")

	var req UpdateBikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed JSON parse in update bike", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
		handleBindError(c, err)
		return
	}

	patch := domain.BikePatch{
		ExternalID: req.ExternalID,
		Name:       req.Name,
		Price:      req.Price,
		Images:     req.Images,
		Available:  req.Available,
	}
	if req.Size != nil {
		size := domain.BikeSize(*req.Size)
		patch.Size = &size
	}
	if req.Type != nil {
		t := bikeType(*req.Type)
		patch.Type = &t
	}

	updatedBike, err := h.bikeService.UpdateBike(c.Request.Context(), bikeID, patch)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, updatedBike)
}

// @Summary Удалить байк
// @Description Удаление байка (только админ)
// @Tags bikes
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID байка" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"
// @Success 200 {object} messageResponse "Байк удален"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 403 {object} errorResponse "Доступ запрещен"
// @Failure 404 {object} errorResponse "Байк не найден"
// @Router /api/deleteBike/{id} [delete]
func (h *BikeHandler) DeleteBike(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	bikeID := c.Param("id")

	if err := h.bikeService.DeleteBike(c.Request.Context(), bikeID); err != nil {
		handleError(c, err)
		return
	}

	newMessageResponse(c, http.StatusOK, "Bike deleted successfully")
}
