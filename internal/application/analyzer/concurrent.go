package analyzer

// concurrent.go — worker pool para análisis paralelo de usuarios.
//
// El pool es acotado y pequeño (default 3): cada usuario implica decenas
// de páginas contra la Data API y el cuello de botella es el rate limit
// upstream. Los workers no comparten estado mutable; los resultados salen
// por un channel que consume un único collector.

import (
	"context"
	"log/slog"
	"sync"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

// analyzeUsersConcurrent analiza usuarios en paralelo con un pool acotado.
// workCh se alimenta completo antes de cerrar; resultCh se cierra cuando
// todos los workers terminan. El orden de salida es orden de terminación,
// no de llegada.
func analyzeUsersConcurrent(
	ctx context.Context,
	a *Analyzer,
	users []domain.User,
	workers int,
) <-chan domain.UserSummary {
	workCh := make(chan domain.User, len(users))
	resultCh := make(chan domain.UserSummary, len(users))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for user := range workCh {
				if ctx.Err() != nil {
					return
				}
				summary, err := a.AnalyzeUser(ctx, user)
				if err != nil {
					slog.Debug("user analysis aborted", "wallet", user.Wallet, "err", err)
					continue
				}
				resultCh <- summary
			}
		}()
	}

	for _, user := range users {
		workCh <- user
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	return resultCh
}
