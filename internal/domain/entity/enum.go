package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/emart-api/internal/domain"
)

// parseEnum normaliza s (trim + mayúsculas) y lo valida contra los valores permitidos.
// Un valor desconocido devuelve domain.ErrInvalidInput, nunca un panic.
func parseEnum[T ~string](kind, s string, allowed ...T) (T, error) {
	v := T(strings.ToUpper(strings.TrimSpace(s)))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s desconocido %q", domain.ErrInvalidInput, kind, s)
}
