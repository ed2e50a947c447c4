package utils

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
)

// Response is the uniform success envelope of the API
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody carries the error detail of a failed request. The stack is only
// filled outside production.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// SendSuccess sends a success response
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SendPaginated sends a success response for a paginated listing
func SendPaginated(c *gin.Context, statusCode int, message string, data interface{}, pagination Pagination) {
	c.JSON(statusCode, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &pagination,
	})
}

// SendError sends an error response with the uniform envelope
func SendError(c *gin.Context, statusCode int, message string) {
	body := &ErrorBody{
		Code:    statusPhrase(statusCode),
		Message: message,
	}

	if statusCode >= http.StatusInternalServerError && os.Getenv("APP_ENV") != "production" {
		body.Stack = string(debug.Stack())
	}

	c.JSON(statusCode, Response{
		Success: false,
		Error:   body,
	})
}

// statusPhrase turns an HTTP status into its constant-style phrase,
// e.g. 404 -> NOT_FOUND
func statusPhrase(statusCode int) string {
	text := http.StatusText(statusCode)
	if text == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
