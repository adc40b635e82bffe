package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/moodtunes/moodtunes-backend/internal/domain"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondDialogueError maps the dialogue error taxonomy onto HTTP statuses
// so individual handlers never branch on codes themselves.
func RespondDialogueError(c *gin.Context, err error) {
	code := types.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case types.CodeInvalidInput:
		status = http.StatusBadRequest
	case types.CodeNotFound, types.CodeExpired:
		status = http.StatusNotFound
	case types.CodeConflict:
		status = http.StatusConflict
	case types.CodeRetryable:
		status = http.StatusServiceUnavailable
	case types.CodeStorage, types.CodeInternal:
		status = http.StatusInternalServerError
	default:
		code = types.CodeInternal
	}
	RespondError(c, status, string(code), err)
}
