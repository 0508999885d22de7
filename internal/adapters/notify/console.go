package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/VitalyChait/MetaBet/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.SummaryNotifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify imprime los resúmenes en el modo configurado.
func (c *Console) Notify(_ context.Context, summaries []domain.UserSummary) error {
	if len(summaries) == 0 {
		fmt.Fprintf(c.out, "[%s] no users analyzed\n", time.Now().Format("15:04:05"))
		return nil
	}

	if c.table {
		c.printFull(summaries)
	} else {
		c.printCompact(summaries)
	}
	return nil
}

// printCompact imprime lo esencial en una línea por run.
func (c *Console) printCompact(summaries []domain.UserSummary) {
	now := time.Now().Format("15:04:05")
	wins, losses, dups, hedges, partial := totals(summaries)

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %d users → W:%d L:%d dup:%d hedge:%d", now, len(summaries), wins, losses, dups, hedges)
	if partial > 0 {
		fmt.Fprintf(&sb, " partial:%d", partial)
	}

	shown := 0
	for _, s := range summaries {
		if shown >= 4 {
			break
		}
		if s.DiffOutcomeCount == 0 {
			continue
		}
		fmt.Fprintf(&sb, " | %s hedges:%d", compactName(s.Name, 20), s.DiffOutcomeCount)
		shown++
	}

	fmt.Fprintln(c.out, sb.String())
}

// printFull imprime la tabla completa con una fila por usuario.
func (c *Console) printFull(summaries []domain.UserSummary) {
	now := time.Now().Format("15:04:05")
	wins, losses, dups, hedges, partial := totals(summaries)

	fmt.Fprintf(c.out, "\n[%s] %d users — W:%d L:%d dup:%d hedge:%d partial:%d\n",
		now, len(summaries), wins, losses, dups, hedges, partial)

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Name", "Wallet", "Wins", "Losses", "Won$", "Lost$", "Dup", "Hedge", "Notes")

	for i, s := range summaries {
		flag := ""
		if s.Partial {
			flag = " (partial)"
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			truncate(s.Name, 20)+flag,
			shortWallet(s.Wallet),
			fmt.Sprintf("%d", s.Wins),
			fmt.Sprintf("%d", s.Losses),
			fmt.Sprintf("$%.2f", s.TotalWon),
			fmt.Sprintf("$%.2f", s.TotalLost),
			fmt.Sprintf("%d", s.DuplicatedBets),
			fmt.Sprintf("%d", s.DiffOutcomeCount),
			truncate(s.Notes(), 40),
		)
	}

	table.Render()

	fmt.Fprintln(c.out, "  Dup = markets entered more than once | Hedge = entries on both sides")
	fmt.Fprintln(c.out, "  Won$/Lost$ = net cashflow per classified market, summed")
}

// PrintSuspects imprime los traders sospechosos de un mercado.
func (c *Console) PrintSuspects(market domain.ClosedMarket, suspects []domain.Suspect) {
	winner, _ := market.Winner()
	fmt.Fprintf(c.out, "\n%s\n  winner: %s  volume: $%.0f\n",
		truncate(market.Question, 70), winner, market.Volume)

	if len(suspects) == 0 {
		fmt.Fprintln(c.out, "  no suspects")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Wallet", "Position", "Volume", "Trades", "First", "Hrs before end")

	for _, s := range suspects {
		table.Append(
			shortWallet(s.Wallet),
			s.Position,
			fmt.Sprintf("$%.2f", s.Volume),
			fmt.Sprintf("%d", s.Trades),
			s.Timing.FirstTrade.Format("01-02 15:04"),
			fmt.Sprintf("%.1f", s.Timing.HoursBeforeEnd),
		)
	}
	table.Render()
}

// --- helpers ---

func totals(summaries []domain.UserSummary) (wins, losses, dups, hedges, partial int) {
	for _, s := range summaries {
		wins += s.Wins
		losses += s.Losses
		dups += s.DuplicatedBets
		hedges += s.DiffOutcomeCount
		if s.Partial {
			partial++
		}
	}
	return
}

func shortWallet(wallet string) string {
	if len(wallet) <= 12 {
		return wallet
	}
	return wallet[:10] + "..."
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func compactName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := s[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > maxLen/2 {
		cut = cut[:idx]
	}
	return cut + "…"
}
