package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/dispusip/arsip-api/pkg/errors"
)

// Envelope is the common response contract shared by every endpoint.
type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// JSON sends a success response with the given message and payload.
func JSON(c *gin.Context, status int, message string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Status: true, Message: message, Data: data})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, message, data)
}

// Error sends a failure response converting the error to the common envelope.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	envelope := Envelope{Status: false, Message: appErr.Message}
	if len(appErr.Fields) > 0 {
		envelope.Errors = appErr.Fields
	}
	c.JSON(appErr.Status, envelope)
}
