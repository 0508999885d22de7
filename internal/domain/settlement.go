package domain

import (
	"strings"
	"time"
)

// SettledBounds define cuándo los outcomePrices de un mercado binario se
// consideran liquidados: uno ≈ 1 y el otro ≈ 0. umaResolutionStatus no es
// un indicador fiable por sí solo, así que el test se hace sobre precios.
type SettledBounds struct {
	Hi float64
	Lo float64
}

// DefaultSettledBounds devuelve los límites por defecto (0.98 / 0.02).
func DefaultSettledBounds() SettledBounds {
	return SettledBounds{Hi: 0.98, Lo: 0.02}
}

// ClosedMarket es un mercado cerrado de Gamma, candidato al scan de
// traders sospechosos.
type ClosedMarket struct {
	ConditionID   string
	Question      string
	Slug          string
	EndDate       time.Time
	Outcomes      []string
	OutcomePrices []float64
	Volume        float64
}

// IsBinary indica si el mercado tiene exactamente dos outcomes.
func (m ClosedMarket) IsBinary() bool {
	return len(m.Outcomes) == 2
}

// IsSettled indica si un mercado binario quedó liquidado según sus precios.
func (m ClosedMarket) IsSettled(b SettledBounds) bool {
	if len(m.OutcomePrices) != 2 {
		return false
	}
	p0, p1 := m.OutcomePrices[0], m.OutcomePrices[1]
	return (p0 >= b.Hi && p1 <= b.Lo) || (p1 >= b.Hi && p0 <= b.Lo)
}

// Winner infiere el outcome ganador como el de mayor precio, normalizado
// a minúsculas. Devuelve false si outcomes y precios no casan.
func (m ClosedMarket) Winner() (string, bool) {
	if len(m.Outcomes) == 0 || len(m.Outcomes) != len(m.OutcomePrices) {
		return "", false
	}
	best := 0
	for i, p := range m.OutcomePrices {
		if p > m.OutcomePrices[best] {
			best = i
		}
	}
	return strings.ToLower(strings.TrimSpace(m.Outcomes[best])), true
}
