package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body unified JSON envelope for API responses
type Body struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 response with the given payload
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Fail writes a 400 response with an error code and message
func Fail(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, Body{Code: code, Message: message})
}

// FailWith writes an error response with an explicit HTTP status
func FailWith(c *gin.Context, status int, code, message string) {
	c.JSON(status, Body{Code: code, Message: message})
}

// ServerError writes a generic 500. Internal detail belongs in the log, not
// in the response body.
func ServerError(c *gin.Context, code string) {
	c.JSON(http.StatusInternalServerError, Body{Code: code, Message: "internal server error"})
}
