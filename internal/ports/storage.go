package ports

import (
	"context"
	"time"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

// SummaryStorage persiste los resúmenes de cada run de análisis.
type SummaryStorage interface {
	// BeginRun registra un run nuevo y devuelve su id.
	BeginRun(ctx context.Context, startedAt time.Time, params string) (string, error)

	// SaveSummary persiste (o actualiza) el resumen de un usuario del run.
	SaveSummary(ctx context.Context, runID string, s domain.UserSummary) error

	// FinishRun cierra el run con el total de usuarios procesados.
	FinishRun(ctx context.Context, runID string, users int) error

	// GetRunSummaries devuelve los resúmenes persistidos de un run.
	GetRunSummaries(ctx context.Context, runID string) ([]domain.UserSummary, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
