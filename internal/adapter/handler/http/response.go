package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Success bool         `json:"success" example:"false"`
	Error   string       `json:"error" example:"Bike not found"`
	Errors  []fieldError `json:"errors,omitempty"`
}

type fieldError struct {
	Field string `json:"field" example:"email"`
	Msg   string `json:"msg" example:"must be a valid email"`
}

type messageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Booking cancelled"`
}

func newErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, errorResponse{
		Success: false,
		Error:   message,
	})
}

func newMessageResponse(c *gin.Context, code int, message string) {
	c.JSON(code, messageResponse{
		Success: true,
		Message: message,
	})
}

// errorStatus maps domain errors onto HTTP codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrBikeUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrBikeNotFound):
		return "Bike not found"
	case errors.Is(err, domain.ErrBookingNotFound):
		return "Booking not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, domain.ErrBikeUnavailable):
		return "Bike not available"
	case errors.Is(err, domain.ErrInvalidStatus):
		return "Invalid status"
	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, domain.ErrNotBookingOwner):
		return "Unauthorized"
	case errors.Is(err, domain.ErrAdminProtected):
		return "Admin accounts cannot be deleted"
	case errors.Is(err, domain.ErrEmailTaken):
		return "Email already registered"
	case errors.Is(err, domain.ErrConflict):
		return "Conflict"
	default:
		return "Internal server error"
	}
}

func handleError(c *gin.Context, err error) {
	body := errorResponse{
		Success: false,
		Error:   errorMessage(err),
		Errors:  validationErrors(err),
	}
	c.AbortWithStatusJSON(errorStatus(err), body)
}

// handleBindError answers a failed ShouldBindJSON with 400.
func handleBindError(c *gin.Context, err error) {
	if list := validationErrors(err); len(list) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Success: false,
			Error:   "Validation failed",
			Errors:  list,
		})
		return
	}
	newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
}

func validationErrors(err error) []fieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	list := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		list = append(list, fieldError{
			Field: lowerFirst(fe.Field()),
			Msg:   fieldMessage(fe),
		})
	}
	return list
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gtefield":
		return "must not be before " + lowerFirst(fe.Param())
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
