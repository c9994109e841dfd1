package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput = errors.New("entrada inválida")

	// ErrLLMTimeout la llamada al LLM superó su deadline o fue cancelada.
	// Se recupera localmente con el detector de reglas; nunca llega al usuario final.
	ErrLLMTimeout = errors.New("timeout del intérprete LLM")

	// ErrRespuestaLLMInvalida el modelo respondió pero el texto no contiene un
	// comando JSON extraíble. Se recupera con el detector de reglas.
	ErrRespuestaLLMInvalida = errors.New("respuesta del LLM sin JSON válido")
)

// LLMBackendError indica que el backend LLM respondió con un estado no exitoso.
// A diferencia del timeout, esto suele ser un problema de configuración
// (modelo inexistente, URL incorrecta) y se expone al caller con detalle.
type LLMBackendError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *LLMBackendError) Error() string {
	return fmt.Sprintf("backend LLM %s respondió HTTP %d: %s", e.URL, e.StatusCode, e.Body)
}
