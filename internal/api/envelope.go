package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"CareerGo/internal/apperr"
)

// Envelope is the uniform result shape every endpoint answers with.
type Envelope struct {
	Success bool        `json:"success"`
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func OK(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Status: status, Message: message, Data: data})
}

func Fail(c echo.Context, err error) error {
	status := apperr.Status(err)
	return c.JSON(status, Envelope{Success: false, Status: status, Message: apperr.MessageOf(err), Data: nil})
}

func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Status: http.StatusBadRequest, Message: message, Data: nil})
}
