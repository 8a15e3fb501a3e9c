package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotConfigured indica que faltan token o chat id.
	ErrNotConfigured = errors.New("telegram credentials not configured")
	// ErrTelegram envuelve respuestas ok=false de la Bot API.
	ErrTelegram = errors.New("telegram api error")
)

const defaultTelegramURL = "https://api.telegram.org"

// Sender entrega una solicitud al canal de operadores.
type Sender interface {
	Send(ctx context.Context, request Request) error
}

// TelegramSender manda la foto al chat de operadores con sendPhoto.
type TelegramSender struct {
	baseURL string
	token   string
	chatID  string
	client  *http.Client
}

// TelegramOption configura el sender.
type TelegramOption func(*TelegramSender)

// WithBaseURL apunta a otro host (tests, proxy).
func WithBaseURL(baseURL string) TelegramOption {
	return func(sender *TelegramSender) {
		sender.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient reemplaza el cliente HTTP.
func WithHTTPClient(client *http.Client) TelegramOption {
	return func(sender *TelegramSender) {
		sender.client = client
	}
}

// NewTelegramSender crea el sender. Sin credenciales, Send devuelve ErrNotConfigured.
func NewTelegramSender(token, chatID string, options ...TelegramOption) *TelegramSender {
	sender := &TelegramSender{
		baseURL: defaultTelegramURL,
		token:   strings.TrimSpace(token),
		chatID:  strings.TrimSpace(chatID),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, option := range options {
		option(sender)
	}
	return sender
}

type sendPhotoRequest struct {
	ChatID  string `json:"chat_id"`
	Photo   string `json:"photo"`
	Caption string `json:"caption"`
}

type botResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send implementa Sender.
func (sender *TelegramSender) Send(ctx context.Context, request Request) error {
	if sender.token == "" || sender.chatID == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(sendPhotoRequest{
		ChatID:  sender.chatID,
		Photo:   request.PhotoURL,
		Caption: request.Caption(),
	})
	if err != nil {
		return fmt.Errorf("encode sendPhoto: %w", err)
	}

	url := sender.baseURL + "/bot" + sender.token + "/sendPhoto"
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sendPhoto: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	response, err := sender.client.Do(httpRequest)
	if err != nil {
		// El error de net/http incluye la URL, que lleva el token.
		return fmt.Errorf("sendPhoto request failed: %w", redact(err, sender.token))
	}
	defer response.Body.Close()

	var body botResponse
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: status %d", ErrTelegram, response.StatusCode)
	}
	if !body.OK {
		return fmt.Errorf("%w: %s", ErrTelegram, body.Description)
	}
	return nil
}

type redactedError struct {
	text  string
	cause error
}

func (err *redactedError) Error() string { return err.text }
func (err *redactedError) Unwrap() error { return err.cause }

func redact(err error, secret string) error {
	return &redactedError{text: strings.ReplaceAll(err.Error(), secret, "***"), cause: errors.Unwrap(err)}
}
