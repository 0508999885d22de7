package domain

import (
	"sort"
	"strings"
	"time"
)

// MarketTrade es un trade individual de un mercado liquidado (Data API),
// usado solo por el scan de sospechosos.
type MarketTrade struct {
	Wallet    string
	Outcome   string
	Size      float64
	Timestamp time.Time
}

// Suspect es un trader marcado por la heurística: contrarian respecto al
// volumen mayoritario, entrada tardía, y ganó.
type Suspect struct {
	Wallet     string
	Position   string // "yes" | "no"
	Volume     float64
	Trades     int
	Contrarian bool
	Won        bool
	Timing     TradeTiming
}

// traderAgg acumula los trades de un wallet dentro de un mercado.
type traderAgg struct {
	times     []time.Time
	total     float64
	yesVolume float64
	noVolume  float64
	trades    int
}

// FindSuspects aplica la heurística sobre los trades de un mercado binario
// liquidado. Devuelve los sospechosos ordenados por volumen descendente.
// Si el ganador no es inferible, no hay nada que marcar.
func FindSuspects(m ClosedMarket, trades []MarketTrade, th TimingThresholds) []Suspect {
	winner, ok := m.Winner()
	if !ok || (winner != "yes" && winner != "no") {
		return nil
	}

	byWallet := make(map[string]*traderAgg)
	for _, tr := range trades {
		if tr.Wallet == "" {
			continue
		}
		agg, exists := byWallet[tr.Wallet]
		if !exists {
			agg = &traderAgg{}
			byWallet[tr.Wallet] = agg
		}
		agg.trades++
		agg.total += tr.Size
		agg.times = append(agg.times, tr.Timestamp)

		switch strings.ToLower(strings.TrimSpace(tr.Outcome)) {
		case "yes":
			agg.yesVolume += tr.Size
		case "no":
			agg.noVolume += tr.Size
		}
	}
	if len(byWallet) == 0 {
		return nil
	}

	var totalYes, totalNo float64
	for _, agg := range byWallet {
		totalYes += agg.yesVolume
		totalNo += agg.noVolume
	}
	majority := "yes"
	if totalNo > totalYes {
		majority = "no"
	}

	var suspects []Suspect
	for wallet, agg := range byWallet {
		position := "yes"
		if agg.noVolume > agg.yesVolume {
			position = "no"
		}

		timing, hasTiming := ComputeTiming(agg.times, m.EndDate)
		s := Suspect{
			Wallet:     wallet,
			Position:   position,
			Volume:     agg.total,
			Trades:     agg.trades,
			Contrarian: position != majority,
			Won:        position == winner,
			Timing:     timing,
		}

		if s.Contrarian && s.Won && hasTiming && timing.LateEntry(th) {
			suspects = append(suspects, s)
		}
	}

	sort.Slice(suspects, func(i, j int) bool {
		return suspects[i].Volume > suspects[j].Volume
	})
	return suspects
}
