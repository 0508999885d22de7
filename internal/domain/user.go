package domain

import "strings"

// User es una entrada del leaderboard a analizar.
type User struct {
	Rank       int
	Name       string
	Wallet     string
	ProfileURL string
}

// WalletFromProfileURL extrae el identificador de wallet del Profile URL:
// el último segmento del path (https://polymarket.com/profile/0xabc → 0xabc).
// Devuelve cadena vacía si no hay segmento útil.
func WalletFromProfileURL(raw string) string {
	s := strings.TrimSpace(strings.TrimSuffix(raw, "/"))
	if s == "" {
		return ""
	}
	idx := strings.LastIndex(s, "/")
	if idx < 0 {
		return s
	}
	return strings.TrimSpace(s[idx+1:])
}
