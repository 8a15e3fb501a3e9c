package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody es el cuerpo de error que devuelve la API.
// El panel lee "error" y lo muestra tal cual, así que el mensaje va para humanos.
type ErrorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"` // ej: "invalid_input", "not_found"
	RequestID string `json:"request_id,omitempty"`
}

// MessageBody confirma operaciones que no devuelven un recurso.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON escribe una respuesta JSON con headers correctos.
// Nota: en caso de error de encodeo, responde 500 de forma segura.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		// Último recurso: no se pudo serializar JSON.
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error","code":"internal"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// OK devuelve una respuesta exitosa.
func OK(w http.ResponseWriter, status int, payload any) {
	JSON(w, status, payload)
}

// Message devuelve {"message": ...}.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageBody{Message: message})
}

// Fail devuelve un error estructurado.
func Fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	JSON(w, status, ErrorBody{
		Error:     message,
		Code:      code,
		RequestID: RequestIDFrom(r),
	})
}
