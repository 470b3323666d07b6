package http

import (
	"net/http"
	"time"

	"github.com/sm8ta/webike_rental_service/internal/core/ports"
	"github.com/sm8ta/webike_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
	logger          ports.LoggerPort
	metrics         ports.MetricsPort
}

type FavoriteRequest struct {
	ProductID string `json:"productId" binding:"required" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
}

func NewFavoriteHandler(favoriteService *services.FavoriteService, logger ports.LoggerPort, metrics ports.MetricsPort) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		logger:          logger,
		metrics:         metrics,
	}
}

// @Summary Избранное
// @Tags favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Bike "Избранные байки"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Router /api/favorite/all [get]
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bikes, err := h.favoriteService.GetFavorites(c.Request.Context(), payload.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, bikes)
}

// @Summary Добавить в избранное
// @Tags favorites
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body FavoriteRequest true "ID байка"
// @Success 200 {object} messageResponse "Добавлено"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 404 {object} errorResponse "Байк не найден"
// @Router /api/favorite/add [post]
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.favoriteService.AddFavorite(c.Request.Context(), payload.UserID, req.ProductID); err != nil {
		handleError(c, err)
		return
	}

	newMessageResponse(c, http.StatusOK, "Added to favorites")
}

// @Summary Удалить из избранного
// @Tags favorites
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body FavoriteRequest true "ID байка"
// @Success 200 {object} messageResponse "Удалено"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Router /api/favorite/remove [post]
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.favoriteService.RemoveFavorite(c.Request.Context(), payload.UserID, req.ProductID); err != nil {
		handleError(c, err)
		return
	}

	newMessageResponse(c, http.StatusOK, "Removed from favorites")
}
