package domain

import "time"

// TimingThresholds parametriza la heurística temporal del scan de
// sospechosos. Los valores por defecto (24h / 168h) vienen del análisis
// original y no tienen más justificación que esa — por eso son config.
type TimingThresholds struct {
	// LateEntry: últimas operaciones a menos de este margen del cierre.
	LateEntry time.Duration
	// EarlyExit: últimas operaciones a más de este margen del cierre.
	EarlyExit time.Duration
}

// DefaultTimingThresholds devuelve los umbrales por defecto.
func DefaultTimingThresholds() TimingThresholds {
	return TimingThresholds{
		LateEntry: 24 * time.Hour,
		EarlyExit: 168 * time.Hour,
	}
}

// TradeTiming resume la actividad temporal de un trader en un mercado,
// relativa al horizonte de cierre (endDate). endDate es el cierre del
// evento, NO el momento de resolución.
type TradeTiming struct {
	FirstTrade     time.Time
	LastTrade      time.Time
	End            time.Time
	HoursBeforeEnd float64
	HoursActive    float64
	Trades         int
}

// ComputeTiming construye el timing a partir de los timestamps de trades.
// Devuelve false si no hay timestamps válidos o falta el horizonte.
func ComputeTiming(times []time.Time, end time.Time) (TradeTiming, bool) {
	if end.IsZero() {
		return TradeTiming{}, false
	}

	var first, last time.Time
	n := 0
	for _, t := range times {
		if t.IsZero() {
			continue
		}
		if n == 0 || t.Before(first) {
			first = t
		}
		if n == 0 || t.After(last) {
			last = t
		}
		n++
	}
	if n == 0 {
		return TradeTiming{}, false
	}

	return TradeTiming{
		FirstTrade:     first,
		LastTrade:      last,
		End:            end,
		HoursBeforeEnd: end.Sub(last).Hours(),
		HoursActive:    last.Sub(first).Hours(),
		Trades:         n,
	}, true
}

// LateEntry indica si la última operación cayó dentro del margen de cierre.
func (t TradeTiming) LateEntry(th TimingThresholds) bool {
	return t.HoursBeforeEnd < th.LateEntry.Hours()
}

// EarlyExit indica si el trader dejó de operar mucho antes del cierre.
func (t TradeTiming) EarlyExit(th TimingThresholds) bool {
	return t.HoursBeforeEnd > th.EarlyExit.Hours()
}
