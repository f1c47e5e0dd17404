package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Result is the response envelope every endpoint returns; errors carry a
// null data field.
type Result struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func ok(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Result{Code: http.StatusOK, Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, Result{Code: status, Message: message, Data: nil})
}

func failBadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message)
}

func failForbidden(c *gin.Context) {
	fail(c, http.StatusForbidden, "permission denied")
}

func failInternal(c *gin.Context) {
	fail(c, http.StatusInternalServerError, "internal error")
}
