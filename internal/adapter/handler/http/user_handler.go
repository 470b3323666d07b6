package http

import (
	"net/http"
	"time"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"
	"github.com/sm8ta/webike_rental_service/internal/core/ports"
	"github.com/sm8ta/webike_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty" example:"Nikita"`
	Age    *int    `json:"age,omitempty" example:"28"`
	Gender *string `json:"gender,omitempty" example:"male"`
	Role   *string `json:"role,omitempty" example:"admin"`
}

func NewUserHandler(userService *services.UserService, logger ports.LoggerPort, metrics ports.MetricsPort) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
		metrics:     metrics,
	}
}

// @Summary Список пользователей
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.User "Пользователи"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 403 {object} errorResponse "Доступ запрещен"
// @Router /api/users [get]
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// @Summary Мой профиль
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.User "Профиль"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 404 {object} errorResponse "Пользователь не найден"
// @Router /api/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		h.logger.Warn("Unauthorized access attempt to GetMe", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), payload.UserID.String())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Получить пользователя
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} domain.User "Пользователь"
// @Failure 401 {object} errorResponse "Не авторизован"
// @Failure 403 {object} errorResponse "Доступ запрещен"
// @Failure 404 {object} errorResponse "Пользователь не найден"
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Обновить пользователя
// @Description Имя, возраст, пол и роль
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param request body UpdateUserRequest true "Данные для обновления"
// @Success 200 {object} domain.User "Пользователь обновлен"
// @Failure 400 {object} errorResponse "Неверный запрос"
// @Failure 403 {object} errorResponse "Доступ запрещен"
// @Failure 404 {object} errorResponse "Пользователь не найден"
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	patch := domain.UserPatch{
		Name:   req.Name,
		Age:    req.Age,
		Gender: req.Gender,
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		patch.Role = &role
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Удалить пользователя
// @Description Админов удалить нельзя
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} messageResponse "Пользователь удален"
// @Failure 403 {object} errorResponse "Доступ запрещен"
// @Failure 404 {object} errorResponse "Пользователь не найден"
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	newMessageResponse(c, http.StatusOK, "User deleted successfully")
}
