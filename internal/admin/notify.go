package admin

// Severity distingue avisos de éxito y de error.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification es el aviso que ve el usuario al terminar cada operación.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier entrega avisos al usuario (toast, consola, log).
type Notifier interface {
	Notify(notification Notification)
}

// NotifierFunc adapta una función a Notifier.
type NotifierFunc func(notification Notification)

// Notify implementa Notifier.
func (fn NotifierFunc) Notify(notification Notification) {
	fn(notification)
}

// Confirmer pregunta sí/no antes de una acción destructiva.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapta una función a Confirmer.
type ConfirmerFunc func(prompt string) bool

// Confirm implementa Confirmer.
func (fn ConfirmerFunc) Confirm(prompt string) bool {
	return fn(prompt)
}

// Textos que ve el usuario.
const (
	titleSuccess = "Успешно!"
	titleError   = "Ошибка"

	textLoadFailed    = "Не удалось загрузить товары"
	textSaveFailed    = "Не удалось сохранить товар"
	textDeleteFailed  = "Не удалось удалить товар"
	textImportFailed  = "Не удалось загрузить файл"
	textCreated       = "Товар создан"
	textUpdated       = "Товар обновлён"
	textDeleted       = "Товар удалён"
	textRequiredField = "Заполните название, категорию и цену"

	// DeletePrompt es la pregunta de confirmación antes de borrar.
	DeletePrompt = "Вы уверены, что хотите удалить этот товар?"
)

func success(description string) Notification {
	return Notification{Title: titleSuccess, Description: description, Severity: SeveritySuccess}
}

func failure(description string) Notification {
	return Notification{Title: titleError, Description: description, Severity: SeverityError}
}
