package ports

import (
	"context"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

// ActivityProvider obtiene el historial de actividad económica de un wallet,
// ya normalizado a eventos de dominio.
type ActivityProvider interface {
	// FetchActivity pagina el historial completo del wallet.
	// Ante un error a mitad de paginación devuelve los eventos acumulados
	// junto con el error — el caller decide si degrada a resumen parcial.
	FetchActivity(ctx context.Context, wallet string) ([]domain.Event, error)
}

// PositionProvider obtiene las posiciones abiertas de un wallet como
// eventos HOLDING (valor actual mark-to-market).
type PositionProvider interface {
	// FetchPositions pagina las posiciones del wallet. Mismo contrato de
	// resultado parcial que FetchActivity.
	FetchPositions(ctx context.Context, wallet string) ([]domain.Event, error)
}
