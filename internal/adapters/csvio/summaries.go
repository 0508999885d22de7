package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

// summaryHeader fija el orden de columnas del CSV de salida.
var summaryHeader = []string{
	"Name", "Wallet", "Profile URL",
	"Wins", "Losses", "Total Won", "Total Lost",
	"Duplicated Bets", "Diff Outcome Count", "Diff Outcome Details",
}

// SummaryFile escribe una fila por usuario a medida que los workers
// terminan, con flush tras cada fila para que un run interrumpido
// conserve lo ya analizado. Implementa ports.SummaryWriter.
// Append no es seguro para llamadas concurrentes; el runner serializa.
type SummaryFile struct {
	file   *os.File
	writer *csv.Writer
}

// NewSummaryFile crea (o trunca) el fichero y escribe la cabecera.
func NewSummaryFile(path string) (*SummaryFile, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csvio.NewSummaryFile: %w", err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(summaryHeader); err != nil {
		file.Close()
		return nil, fmt.Errorf("csvio.NewSummaryFile: write header: %w", err)
	}
	w.Flush()

	return &SummaryFile{file: file, writer: w}, nil
}

// Append escribe la fila de un usuario y hace flush.
func (f *SummaryFile) Append(s domain.UserSummary) error {
	record := []string{
		s.Name,
		s.Wallet,
		s.ProfileURL,
		strconv.Itoa(s.Wins),
		strconv.Itoa(s.Losses),
		fmt.Sprintf("%.2f", s.TotalWon),
		fmt.Sprintf("%.2f", s.TotalLost),
		strconv.Itoa(s.DuplicatedBets),
		strconv.Itoa(s.DiffOutcomeCount),
		s.Notes(),
	}
	if err := f.writer.Write(record); err != nil {
		return fmt.Errorf("csvio.Append: %w", err)
	}
	f.writer.Flush()
	return f.writer.Error()
}

// Close cierra el fichero subyacente.
func (f *SummaryFile) Close() error {
	f.writer.Flush()
	if err := f.writer.Error(); err != nil {
		f.file.Close()
		return err
	}
	return f.file.Close()
}
