package ports

import "github.com/VitalyChait/MetaBet/internal/domain"

// UserSource carga la lista de usuarios a analizar.
// Un source inválido (archivo ausente, cabecera malformada) es un error
// fatal para el run completo — no hay procesamiento parcial del input.
type UserSource interface {
	Load() ([]domain.User, error)
}
