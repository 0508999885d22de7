package domain

import "time"

// MarketKey identifica un mercado de forma opaca. Según la fuente de datos
// puede ser un slug (Data API) o un título renderizado (ruta de scraping);
// las dos familias de claves nunca se mezclan en un mismo ledger.
type MarketKey string

// EventKind clasifica el efecto económico de un evento sobre un mercado.
type EventKind int

const (
	// KindEntry abre una posición (compra). Cash sale: amount negativo.
	KindEntry EventKind = iota
	// KindExit cierra o reduce una posición (venta). Cash entra.
	KindExit
	// KindSettlement es un payout de resolución (redeem o merge). Cash entra.
	KindSettlement
	// KindHolding es el valor actual mark-to-market de una posición abierta.
	KindHolding
)

// String devuelve el nombre del kind para logs y notas.
func (k EventKind) String() string {
	switch k {
	case KindEntry:
		return "ENTRY"
	case KindExit:
		return "EXIT"
	case KindSettlement:
		return "SETTLEMENT"
	case KindHolding:
		return "HOLDING"
	}
	return "UNKNOWN"
}

// Event es una acción económica de un usuario atribuida a un mercado.
type Event struct {
	Market  MarketKey
	Kind    EventKind
	// Amount es el flujo de caja firmado en USDC: entries negativos,
	// exits/settlements/holdings positivos.
	Amount  float64
	// Outcome es el label del lado apostado ("Yes", "No", un equipo...).
	// Puede estar vacío en settlements y holdings.
	Outcome string
	// Timestamp ordena eventos para diagnóstico. No participa en el
	// cálculo de cashflow (la suma es conmutativa).
	Timestamp time.Time
}
