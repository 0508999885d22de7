// Package csvio lee y escribe los ficheros tabulares del pipeline: la
// lista de usuarios de entrada, el leaderboard y el CSV de resúmenes.
// Los nombres y el orden de columnas son contrato con las hojas de
// cálculo que consumen la salida — no cambiar sin avisar downstream.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

// UserFile carga usuarios desde un CSV con columnas Name y Profile URL.
// Implementa ports.UserSource.
type UserFile struct {
	Path string
}

// Load lee el fichero completo. El wallet se deriva del último segmento
// del Profile URL; filas sin wallet derivable se saltan con un warning.
func (f UserFile) Load() ([]domain.User, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("csvio.Load: %w", err)
	}
	defer file.Close()

	return readUsers(file)
}

func readUsers(r io.Reader) ([]domain.User, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("csvio.Load: read header: %w", err)
	}

	nameIdx, urlIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "Name":
			nameIdx = i
		case "Profile URL":
			urlIdx = i
		}
	}
	if nameIdx < 0 || urlIdx < 0 {
		return nil, fmt.Errorf("csvio.Load: input needs Name and Profile URL columns, got %v", header)
	}

	var users []domain.User
	rank := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return users, fmt.Errorf("csvio.Load: read row: %w", err)
		}
		if nameIdx >= len(record) || urlIdx >= len(record) {
			continue
		}

		rank++
		profileURL := strings.TrimSpace(record[urlIdx])
		wallet := domain.WalletFromProfileURL(profileURL)
		if wallet == "" {
			slog.Warn("skipping user without derivable wallet", "row", rank, "url", profileURL)
			continue
		}

		users = append(users, domain.User{
			Rank:       rank,
			Name:       strings.TrimSpace(record[nameIdx]),
			Wallet:     wallet,
			ProfileURL: profileURL,
		})
	}

	return users, nil
}
