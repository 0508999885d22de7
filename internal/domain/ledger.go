package domain

import "sort"

// MarketLedger acumula el estado de un mercado para un usuario.
// Invariante: NetCashflow suma TODOS los eventos atribuidos al mercado;
// EntryCount y Outcomes derivan exclusivamente de eventos ENTRY.
type MarketLedger struct {
	NetCashflow float64
	EntryCount  int
	Outcomes    map[string]struct{}
}

// IsDuplicate indica si el usuario entró más de una vez en el mercado.
func (m *MarketLedger) IsDuplicate() bool {
	return m.EntryCount > 1
}

// IsHedged indica si las entradas repetidas apuntaron a outcomes distintos.
// Con una sola entrada nunca puede haber más de un outcome.
func (m *MarketLedger) IsHedged() bool {
	return m.IsDuplicate() && len(m.Outcomes) > 1
}

// OutcomeList devuelve los outcomes vistos en entries, ordenados para
// producir notas deterministas.
func (m *MarketLedger) OutcomeList() []string {
	out := make([]string, 0, len(m.Outcomes))
	for o := range m.Outcomes {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

// Ledger agrupa los MarketLedger de un usuario, uno por MarketKey.
// Solo acumula: no hay operación de borrado. Vive lo que dura el análisis
// de un usuario y no es seguro para uso concurrente.
type Ledger struct {
	entries map[MarketKey]*MarketLedger
}

// NewLedger crea un ledger vacío.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[MarketKey]*MarketLedger)}
}

// Apply acumula un evento en el mercado correspondiente.
// Eventos sin MarketKey se descartan: huecos en la API son esperados.
func (l *Ledger) Apply(ev Event) {
	if ev.Market == "" {
		return
	}

	entry, ok := l.entries[ev.Market]
	if !ok {
		entry = &MarketLedger{Outcomes: make(map[string]struct{})}
		l.entries[ev.Market] = entry
	}

	entry.NetCashflow += ev.Amount

	if ev.Kind == KindEntry {
		entry.EntryCount++
		if ev.Outcome != "" {
			entry.Outcomes[ev.Outcome] = struct{}{}
		}
	}
}

// Entry devuelve el ledger de un mercado, si existe.
func (l *Ledger) Entry(key MarketKey) (*MarketLedger, bool) {
	e, ok := l.entries[key]
	return e, ok
}

// Markets devuelve todas las keys tocadas, ordenadas.
func (l *Ledger) Markets() []MarketKey {
	keys := make([]MarketKey, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len devuelve el número de mercados tocados.
func (l *Ledger) Len() int {
	return len(l.entries)
}
