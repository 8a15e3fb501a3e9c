package leads

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequest_WithDefaults(t *testing.T) {
	lead := Request{PhotoURL: " https://x/p.jpg ", Phone: " +7 900 "}.WithDefaults()

	require.Equal(t, Request{
		PhotoURL: "https://x/p.jpg",
		Name:     "Не указано",
		Phone:    "+7 900",
		Comment:  "Нет комментария",
	}, lead)
}

func TestRequest_Caption(t *testing.T) {
	lead := Request{Name: "Анна", Phone: "123", Comment: "Убрать фон"}

	require.Equal(t, "🖼 Новая заявка на ретушь\n\n👤 Имя: Анна\n📞 Телефон: 123\n💬 Комментарий: Убрать фон", lead.Caption())
}
