package mailer

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"CareerGo/internal/api"
	"CareerGo/internal/config"
)

type SendRequest struct {
	To      []string `json:"to" validate:"required,min=1,dive,email"`
	Subject string   `json:"subject" validate:"required"`
	Body    string   `json:"body" validate:"required"`
}

type BulkSendRequest struct {
	Messages []SendRequest `json:"messages" validate:"required,min=1,dive"`
}

// Handler exposes admin-only endpoints for operational mail.
type Handler struct {
	email config.EmailSender
}

func NewHandler(email *config.EmailService) *Handler {
	return &Handler{email: email}
}

func (h *Handler) Send(c echo.Context) error {
	var req SendRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	if err := h.email.SendEmail(req.To, req.Subject, wrap(req.Subject, req.Body)); err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Email sent successfully", nil)
}

func (h *Handler) SendBulk(c echo.Context) error {
	var req BulkSendRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	for _, message := range req.Messages {
		if err := h.email.SendEmail(message.To, message.Subject, wrap(message.Subject, message.Body)); err != nil {
			return api.Fail(c, err)
		}
	}
	return api.OK(c, http.StatusOK, "Emails sent successfully", nil)
}
