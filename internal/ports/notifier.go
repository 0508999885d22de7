package ports

import (
	"context"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

// SummaryNotifier presenta los resúmenes de usuarios al operador.
type SummaryNotifier interface {
	// Notify muestra los resúmenes al completar el run.
	// En la implementación de consola, imprime una tabla formateada.
	Notify(ctx context.Context, summaries []domain.UserSummary) error
}
