package polymarket

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

// mapActivityItem convierte un registro de actividad en un evento de
// dominio. Devuelve false para registros sin slug, de tipos sin efecto
// económico (SPLIT, REWARD, ...) o con campos imparseables — se descartan
// sin abortar el batch.
func mapActivityItem(it activityItem) (domain.Event, bool) {
	if it.Slug == "" {
		return domain.Event{}, false
	}

	usdc, err := it.UsdcSize.Float64()
	if err != nil {
		return domain.Event{}, false
	}

	ev := domain.Event{
		Market:    domain.MarketKey(it.Slug),
		Timestamp: parseTimestamp(it.Timestamp),
	}

	switch {
	case it.Type == "TRADE" && it.Side == "BUY":
		ev.Kind = domain.KindEntry
		ev.Amount = -usdc
		ev.Outcome = it.Outcome
	case it.Type == "TRADE" && it.Side == "SELL":
		ev.Kind = domain.KindExit
		ev.Amount = usdc
	case it.Type == "REDEEM", it.Type == "MERGE":
		ev.Kind = domain.KindSettlement
		ev.Amount = usdc
	default:
		return domain.Event{}, false
	}

	return ev, true
}

// mapPositionItem convierte una posición abierta en un evento HOLDING con
// su valor actual. El key prefiere slug y cae a eventSlug; sin ninguno de
// los dos la posición se descarta.
func mapPositionItem(it positionItem) (domain.Event, bool) {
	slug := it.Slug
	if slug == "" {
		slug = it.EventSlug
	}
	if slug == "" {
		return domain.Event{}, false
	}

	value, err := it.CurrentValue.Float64()
	if err != nil {
		return domain.Event{}, false
	}

	return domain.Event{
		Market:  domain.MarketKey(slug),
		Kind:    domain.KindHolding,
		Amount:  value,
		Outcome: "", // las posiciones no cuentan como entries
	}, true
}

// mapTrade convierte un trade de /trades a dominio. El wallet prefiere
// proxyWallet y cae a maker.
func mapTrade(t dataTrade) (domain.MarketTrade, bool) {
	wallet := t.ProxyWallet
	if wallet == "" {
		wallet = t.Maker
	}
	if wallet == "" {
		return domain.MarketTrade{}, false
	}

	size, _ := t.Size.Float64()
	return domain.MarketTrade{
		Wallet:    wallet,
		Outcome:   t.Outcome,
		Size:      size,
		Timestamp: parseTimestamp(t.Timestamp),
	}, true
}

// mapGammaMarket convierte la metadata de Gamma a domain.ClosedMarket.
func mapGammaMarket(gm gammaMarket) domain.ClosedMarket {
	m := domain.ClosedMarket{
		ConditionID:   gm.ConditionID,
		Question:      gm.Question,
		Slug:          gm.Slug,
		Outcomes:      decodeStringSlice(gm.Outcomes),
		OutcomePrices: decodeFloatSlice(gm.OutcomePrices),
	}

	if v, err := gm.Volume.Float64(); err == nil {
		m.Volume = v
	}

	for _, raw := range []string{gm.EndDate, gm.EndDateISO, gm.ClosedTime} {
		if raw == "" {
			continue
		}
		if t, ok := parseISOTime(raw); ok {
			m.EndDate = t
			break
		}
	}

	return m
}

// decodeStringSlice acepta un array JSON o un string que contiene el array
// ("[\"Yes\",\"No\"]") — Gamma usa ambas formas según el campo.
func decodeStringSlice(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err == nil {
		return out
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(inner), &out); err != nil {
		return nil
	}
	return out
}

// decodeFloatSlice acepta las mismas dos formas, con elementos numéricos
// o strings numéricos.
func decodeFloatSlice(raw json.RawMessage) []float64 {
	strs := decodeStringSlice(raw)
	if strs != nil {
		out := make([]float64, 0, len(strs))
		for _, s := range strs {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil
			}
			out = append(out, f)
		}
		return out
	}

	var out []float64
	if err := json.Unmarshal(raw, &out); err == nil {
		return out
	}
	return nil
}

// parseTimestamp acepta unix seconds, unix millis, floats y strings ISO.
func parseTimestamp(n json.Number) time.Time {
	s := n.String()
	if s == "" {
		return time.Time{}
	}

	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		if sec > 1e12 {
			return time.Unix(sec/1000, (sec%1000)*int64(time.Millisecond))
		}
		return time.Unix(sec, 0)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		sec := int64(f)
		nsec := int64((f - float64(sec)) * 1e9)
		return time.Unix(sec, nsec)
	}
	if t, ok := parseISOTime(s); ok {
		return t
	}
	return time.Time{}
}

// parseISOTime intenta los formatos de fecha que usa Polymarket.
func parseISOTime(s string) (time.Time, bool) {
	for _, layout := range []string{
		time.RFC3339Nano, time.RFC3339,
		"2006-01-02T15:04:05.000Z", "2006-01-02T15:04:05Z",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
