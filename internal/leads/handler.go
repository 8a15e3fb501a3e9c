package leads

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Lelo88/monument-catalog/internal/httpx"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler HTTP para solicitudes del sitio público.
type Handler struct {
	sender        Sender
	validate      *validator.Validate
	logger        *zap.Logger
	publicBaseURL string
}

// HandlerOption configura el Handler.
type HandlerOption func(*Handler)

// WithPublicBaseURL fija contra qué base se resuelven las fotos subidas
// con ruta relativa (/files/...). Sin esto se usa el host del request.
func WithPublicBaseURL(baseURL string) HandlerOption {
	return func(handler *Handler) {
		handler.publicBaseURL = baseURL
	}
}

// NewHandler crea el handler.
func NewHandler(sender Sender, logger *zap.Logger, options ...HandlerOption) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := &Handler{sender: sender, validate: validator.New(), logger: logger}
	for _, option := range options {
		option(handler)
	}
	return handler
}

type sentBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send maneja POST /leads.
func (handler *Handler) Send(writer http.ResponseWriter, request *http.Request) {
	var lead Request
	if err := json.NewDecoder(request.Body).Decode(&lead); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	lead = lead.WithDefaults()
	lead.PhotoURL = handler.resolvePhotoURL(request, lead.PhotoURL)
	if err := handler.validate.Struct(lead); err != nil {
		message := "photo_url must be an absolute URL"
		if lead.PhotoURL == "" {
			message = "photo_url is required"
		}
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", message)
		return
	}

	if err := handler.sender.Send(request.Context(), lead); err != nil {
		switch {
		case errors.Is(err, ErrNotConfigured):
			httpx.Fail(writer, request, http.StatusInternalServerError, "not_configured", "Telegram credentials not configured")
		case errors.Is(err, ErrTelegram):
			handler.logger.Warn("telegram rejected lead", zap.Error(err))
			httpx.Fail(writer, request, http.StatusBadGateway, "telegram_error", "Telegram API error")
		default:
			handler.logger.Error("send lead failed", zap.Error(err))
			httpx.Fail(writer, request, http.StatusBadGateway, "telegram_unreachable", "could not reach Telegram")
		}
		return
	}

	httpx.OK(writer, http.StatusOK, sentBody{Success: true, Message: "Sent to Telegram"})
}

// resolvePhotoURL vuelve absoluta una ruta local como la que devuelve
// POST /upload; Telegram sólo descarga URLs completas.
func (handler *Handler) resolvePhotoURL(request *http.Request, photoURL string) string {
	if !strings.HasPrefix(photoURL, "/") || strings.HasPrefix(photoURL, "//") {
		return photoURL
	}
	return httpx.BaseURL(request, handler.publicBaseURL) + photoURL
}
