package response

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/pkg/screening"
	"Bastion/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

// ScreeningUnavailableMessage HTTP text when the toxicity scorer fails
const ScreeningUnavailableMessage = "Content verification unavailable. Try again later."

// Success 200 with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail writes the envelope with the HTTP status equal to code
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, dto.Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// Error maps err to a status and a user facing message
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, service.ErrParamInvalid.Error())
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, BadRequest, "Invalid JSON")
		return
	}

	if v, ok := screening.AsViolation(err); ok {
		Fail(c, BadRequest, v.Error())
		return
	}
	if errors.Is(err, screening.ErrUnavailable) {
		log.ErrorContext(c.Request.Context(), "screening unavailable", "err", err)
		Fail(c, InternalServerError, ScreeningUnavailableMessage)
		return
	}

	code, ok := service.ErrorMap[err]
	if !ok {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		Fail(c, InternalServerError, service.UnExpectedError.Error())
		return
	}
	Fail(c, code, err.Error())
}
