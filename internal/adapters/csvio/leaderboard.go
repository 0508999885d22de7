package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

var leaderboardHeader = []string{"Rank", "Name", "Profile URL"}

// WriteLeaderboard vuelca el leaderboard a un CSV con el formato que
// espera UserFile.Load, para encadenar leaderboard → analyzer.
func WriteLeaderboard(path string, users []domain.User) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvio.WriteLeaderboard: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(leaderboardHeader); err != nil {
		return fmt.Errorf("csvio.WriteLeaderboard: write header: %w", err)
	}
	for _, u := range users {
		record := []string{strconv.Itoa(u.Rank), u.Name, u.ProfileURL}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csvio.WriteLeaderboard: write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
