package http

import (
	"net/http"
	"time"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"
	"github.com/sm8ta/webike_rental_service/internal/core/ports"
	"github.com/sm8ta/webike_rental_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

type RegisterRequest struct {
	Name     string `json:"name" example:"Nikita"`
	Email    string `json:"email" example:"nikita@example.com"`
	Password string `json:"password" example:"secret123"`
	Age      int    `json:"age" example:"27"`
	Gender   string `json:"gender" example:"male"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"nikita@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func NewAuthHandler(authService *services.AuthService, logger ports.LoggerPort, metrics ports.MetricsPort) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
		metrics:     metrics,
	}
}

// @Summary Регистрация
// @Description Создание пользователя с ролью user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Данные пользователя"
// @Success 201 {object} AuthResponse "Пользователь создан"
// @Failure 400 {object} errorResponse "Ошибка валидации"
// @Failure 409 {object} errorResponse "Email уже занят"
// @Failure 429 {object} errorResponse "Слишком много запросов"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Gender:   req.Gender,
	})
	if err != nil {
		h.logger.Warn("Registration failed", map[string]interface{}{
			"error": err.Error(),
			"ip":    c.ClientIP(),
		})
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

// @Summary Вход
// @Description Получение JWT по email и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Учетные данные"
// @Success 200 {object} AuthResponse "Успешный вход"
// @Failure 400 {object} errorResponse "Неверный запрос"
// @Failure 401 {object} errorResponse "Неверные учетные данные"
// @Failure 429 {object} errorResponse "Слишком много запросов"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Login failed", map[string]interface{}{
			"ip": c.ClientIP(),
		})
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}
