// Package scrape normaliza filas de texto renderizado de la página de
// historial de apuestas. Es el camino legacy anterior a la Data API; se
// mantiene porque algunos mercados antiguos solo aparecen en el DOM.
package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

// statusPattern extrae estado, cantidad y outcome de una línea del estilo
// "Won 1.9 Chargers at 46¢" o "Lost 212.4 Texans at 52¢".
var statusPattern = regexp.MustCompile(`(Won|Lost)\s+([\d.,]+)\s+(.*?)\s+at`)

// Bet es una apuesta cerrada reconstruida de una fila de texto.
type Bet struct {
	Title   string
	Outcome string
	Status  string // "Won" o "Lost"
	Amount  float64
}

// ParseRow reduce el texto de una fila a un Bet. La primera línea es el
// título del mercado; el resto se aplana y se matchea contra el patrón.
// Filas que no matchean se descartan sin error — el DOM cambia a menudo.
func ParseRow(text string) (Bet, bool) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return Bet{}, false
	}
	title := strings.TrimSpace(lines[0])

	flat := strings.Join(lines, " ")
	m := statusPattern.FindStringSubmatch(flat)
	if m == nil {
		return Bet{}, false
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err != nil {
		return Bet{}, false
	}

	return Bet{
		Title:   title,
		Outcome: strings.TrimSpace(m[3]),
		Status:  m[1],
		Amount:  amount,
	}, true
}

// Events convierte la apuesta en eventos de dominio, keyed por título.
// Una apuesta ganada se modela como entry de coste desconocido (0) más la
// liquidación; una perdida como entry por el importe perdido. El cashflow
// neto resultante reproduce el won/lost del texto original.
func (b Bet) Events() []domain.Event {
	key := domain.MarketKey(b.Title)
	switch b.Status {
	case "Won":
		return []domain.Event{
			{Market: key, Kind: domain.KindEntry, Amount: 0, Outcome: b.Outcome},
			{Market: key, Kind: domain.KindSettlement, Amount: b.Amount},
		}
	case "Lost":
		return []domain.Event{
			{Market: key, Kind: domain.KindEntry, Amount: -b.Amount, Outcome: b.Outcome},
		}
	default:
		return nil
	}
}

// ParseRows aplica ParseRow a cada fila y acumula los eventos resultantes.
func ParseRows(rows []string) []domain.Event {
	var events []domain.Event
	for _, row := range rows {
		bet, ok := ParseRow(row)
		if !ok {
			continue
		}
		events = append(events, bet.Events()...)
	}
	return events
}
