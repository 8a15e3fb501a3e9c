package catalog

import (
	"errors"
	"fmt"
)

// TransportError es una falla de red o una respuesta que no se pudo leer.
// Al usuario se le muestra el texto genérico.
type TransportError struct {
	Op  string
	Err error
}

func (err *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", err.Op, err.Err)
}

func (err *TransportError) Unwrap() error {
	return err.Err
}

// ApplicationError es una respuesta bien formada que reporta un error:
// status no 2xx o un campo "error" en el cuerpo.
type ApplicationError struct {
	Op      string
	Status  int
	Message string
}

func (err *ApplicationError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("%s: status %d", err.Op, err.Status)
	}
	return fmt.Sprintf("%s: %s (status %d)", err.Op, err.Message, err.Status)
}

// UserMessage devuelve el texto para el usuario: el del servidor si lo hay,
// si no fallback.
func UserMessage(err error, fallback string) string {
	var applicationError *ApplicationError
	if errors.As(err, &applicationError) && applicationError.Message != "" {
		return applicationError.Message
	}
	return fallback
}
