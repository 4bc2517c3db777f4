package listview

import (
	"net/http"

	"github.com/aulago/aulago/internal/domain"
)

// Translate maps an error to the user-facing message a screen displays.
// Screens own this translation; the fetcher and mutation executors surface
// raw errors. Every message leaves the user a way out (retry or corrected
// input); none is terminal.
func Translate(err error) string {
	switch {
	case err == nil:
		return ""
	case domain.IsNetwork(err):
		return "Sin conexión. Revisa tu red y vuelve a intentarlo."
	case domain.IsValidation(err):
		return "Revisa los campos del formulario."
	case domain.IsPending(err):
		return "La operación anterior todavía está en curso."
	case domain.IsSession(err):
		return "Tu sesión ha expirado. Inicia sesión de nuevo."
	}

	switch domain.APIStatus(err) {
	case http.StatusUnauthorized:
		return "Tu sesión ha expirado. Inicia sesión de nuevo."
	case http.StatusForbidden:
		return "No tienes permisos para realizar esta acción."
	case http.StatusNotFound:
		return "No se encontró el recurso solicitado."
	case http.StatusConflict:
		return "La operación entra en conflicto con el estado actual."
	}

	return "Algo salió mal. Inténtalo de nuevo."
}
