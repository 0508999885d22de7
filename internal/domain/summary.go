package domain

import (
	"fmt"
	"strings"
)

// UserSummary es la fila final por usuario. El orden y nombre de columnas
// del CSV de salida deriva de estos campos (ver adapters/csvio).
type UserSummary struct {
	Name       string
	Wallet     string
	ProfileURL string

	Wins      int
	Losses    int
	TotalWon  float64
	TotalLost float64

	// DuplicatedBets cuenta mercados con más de un ENTRY.
	DuplicatedBets int
	// DiffOutcomeCount cuenta mercados hedgeados (entries en outcomes
	// distintos). Siempre DiffOutcomeCount <= DuplicatedBets.
	DiffOutcomeCount int
	// DiffOutcomeDetails lista los mercados hedgeados con sus outcomes.
	DiffOutcomeDetails []string

	// Partial marca que el fetch terminó antes de tiempo y el resumen
	// se construyó con datos incompletos.
	Partial bool
}

// Notes devuelve los detalles de hedge en una sola cadena para el CSV.
func (s UserSummary) Notes() string {
	return strings.Join(s.DiffOutcomeDetails, "; ")
}

// Summarize recorre el ledger completo de un usuario y produce su resumen:
// clasifica cada mercado por cashflow neto y detecta duplicados y hedges.
func Summarize(l *Ledger, epsilon float64) UserSummary {
	var s UserSummary

	for _, key := range l.Markets() {
		entry, _ := l.Entry(key)

		switch Classify(entry.NetCashflow, epsilon) {
		case ResultWon:
			s.Wins++
			s.TotalWon += entry.NetCashflow
		case ResultLost:
			s.Losses++
			s.TotalLost += -entry.NetCashflow
		}

		if !entry.IsDuplicate() {
			continue
		}
		s.DuplicatedBets++

		if entry.IsHedged() {
			s.DiffOutcomeCount++
			s.DiffOutcomeDetails = append(s.DiffOutcomeDetails,
				fmt.Sprintf("%s: Different outcomes (%s)",
					key, strings.Join(entry.OutcomeList(), ", ")))
		}
	}

	return s
}
