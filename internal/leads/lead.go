package leads

import (
	"fmt"
	"strings"
)

// Request es una solicitud de retoque de foto enviada desde el sitio.
type Request struct {
	PhotoURL string `json:"photo_url" validate:"required,http_url"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Comment  string `json:"comment"`
}

// WithDefaults completa los campos vacíos con los textos que espera el chat.
func (request Request) WithDefaults() Request {
	request.PhotoURL = strings.TrimSpace(request.PhotoURL)
	request.Name = orDefault(request.Name, "Не указано")
	request.Phone = orDefault(request.Phone, "Не указано")
	request.Comment = orDefault(request.Comment, "Нет комментария")
	return request
}

// Caption arma el texto que acompaña la foto en Telegram.
func (request Request) Caption() string {
	return fmt.Sprintf("🖼 Новая заявка на ретушь\n\n👤 Имя: %s\n📞 Телефон: %s\n💬 Комментарий: %s",
		request.Name, request.Phone, request.Comment)
}

func orDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
