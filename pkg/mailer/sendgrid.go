package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"context"

	"gearguard/pkg/config"

	"go.uber.org/zap"
)

// sendGridMailer отправляет письма через SendGrid REST API v3.
type sendGridMailer struct {
	cfg        config.MailConfig
	httpClient *http.Client
	logger     *zap.Logger
	maxRetries int
}

func NewSendGridMailer(cfg config.MailConfig, logger *zap.Logger) (Mailer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("не задан SENDGRID_API_KEY")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.sendgrid.com"
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	return &sendGridMailer{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		maxRetries: 3,
	}, nil
}

// --- SendGrid wire types ---

type personalization struct {
	To []EmailAddress `json:"to"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type mailSendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             EmailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
}

func (m *sendGridMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("mailer: не указан получатель")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("mailer: не указана тема письма")
	}

	contents := []mailContent{}
	if t := strings.TrimSpace(msg.Text); t != "" {
		contents = append(contents, mailContent{Type: "text/plain", Value: t})
	}
	if h := strings.TrimSpace(msg.HTML); h != "" {
		contents = append(contents, mailContent{Type: "text/html", Value: h})
	}
	if len(contents) == 0 {
		return fmt.Errorf("mailer: пустое тело письма")
	}

	wire := mailSendRequest{
		Personalizations: []personalization{{To: msg.To}},
		From:             EmailAddress{Email: m.cfg.FromEmail, Name: m.cfg.FromName},
		Subject:          msg.Subject,
		Content:          contents,
	}

	backoff := time.Second
	var lastErr error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		lastErr = m.doOnce(ctx, wire)
		if lastErr == nil {
			return nil
		}
		if attempt == m.maxRetries {
			break
		}

		m.logger.Warn("Повторная попытка отправки письма",
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return lastErr
}

func (m *sendGridMailer) doOnce(ctx context.Context, wire mailSendRequest) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(wire); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.BaseURL+"/v3/mail/send", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := strings.TrimSpace(string(raw))
		if len(body) > 512 {
			body = body[:512] + "..."
		}
		return fmt.Errorf("sendgrid http %d: %s", resp.StatusCode, body)
	}
	return nil
}
