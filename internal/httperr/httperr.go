package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// statusByCode routes each business reason to its HTTP status.
var statusByCode = map[string]int{
	CodeNotFound:            http.StatusNotFound,
	CodeForbidden:           http.StatusForbidden,
	CodeInvalidState:        http.StatusConflict,
	CodeSlotTaken:           http.StatusConflict,
	CodeBarberConflict:      http.StatusConflict,
	CodeClientConflict:      http.StatusConflict,
	CodeNotAWorkingDay:      http.StatusBadRequest,
	CodeOutsideWorkingHours: http.StatusBadRequest,
	CodeDuringBreak:         http.StatusBadRequest,
	CodeInvalidServices:     http.StatusBadRequest,
	CodeInvalidTimeFormat:   http.StatusBadRequest,
	CodeInvalidTimeRange:    http.StatusBadRequest,
	CodeInvalidDate:         http.StatusBadRequest,
	CodePastDate:            http.StatusBadRequest,
}

// WriteError maps a use-case error to a JSON response. Non-business errors
// become a generic 500.
func WriteError(c *gin.Context, err error) {
	if be, ok := AsBusiness(err); ok {
		status, found := statusByCode[be.Code]
		if !found {
			status = http.StatusBadRequest
		}
		Write(c, status, be.Code, be.Message)
		return
	}
	Internal(c, "internal_error", "unexpected error")
}
