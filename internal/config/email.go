package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type EmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html"`
}

// EmailSender is the notification sink consumed by the domain services.
type EmailSender interface {
	SendEmail(to []string, subject, body string) error
}

type EmailService struct {
	Config *AppConfig
	logger *zap.SugaredLogger
}

func NewEmailService(lc fx.Lifecycle, cfg *AppConfig, logger *zap.SugaredLogger) *EmailService {
	service := &EmailService{Config: cfg, logger: logger}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Email service initialized")
			return nil
		},
	})
	return service
}

func (e *EmailService) SendEmail(to []string, subject, body string) error {
	payload := EmailRequest{
		From:    e.Config.FromEmail,
		To:      to,
		Subject: subject,
		Html:    body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest("POST", e.Config.ResendAPIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+e.Config.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorResponse map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorResponse)
		return fmt.Errorf("failed to send email, status code: %d, error: %v", resp.StatusCode, errorResponse)
	}

	e.logger.Infow("email sent", "to", to, "subject", subject)
	return nil
}
