// Package sender delivers outbound messages to the user's WhatsApp
// number through the Meta Cloud API. Delivery is best effort: the engine
// never fails a turn because a send failed, so failures are logged and
// swallowed here.
package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Sender pushes one text message to a phone number.
type Sender interface {
	Send(ctx context.Context, to, text string)
}

// WhatsApp sends messages through the Cloud API messages endpoint.
type WhatsApp struct {
	baseURL string
	phoneID string
	token   string
	client  *http.Client
	logger  *zap.Logger
}

func NewWhatsApp(baseURL, phoneID, token string, logger *zap.Logger) *WhatsApp {
	return &WhatsApp{
		baseURL: baseURL,
		phoneID: phoneID,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

type outboundMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             outboundText `json:"text"`
}

type outboundText struct {
	Body string `json:"body"`
}

func (w *WhatsApp) Send(ctx context.Context, to, text string) {
	body, err := json.Marshal(outboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             outboundText{Body: text},
	})
	if err != nil {
		w.logger.Error("failed to marshal outbound message", zap.Error(err))
		return
	}

	url := fmt.Sprintf("%s/%s/messages", w.baseURL, w.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		w.logger.Error("failed to build outbound request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.token)

	resp, err := w.client.Do(req)
	if err != nil {
		w.logger.Error("failed to send message",
			zap.String("to", to),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		w.logger.Error("message rejected by whatsapp api",
			zap.String("to", to),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", detail))
	}
}
