package earnings

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Imported earning rows come from exports with loose typing: amounts may be
// strings or numbers, dates sit under a few different keys. Coerce here so
// the aggregator only ever sees clean Records.

var dateKeys = []string{"date", "session_date", "day"}

// NormalizeRecord maps a raw decoded row into a Record. ok is false when no
// date can be resolved (the row cannot be grouped); bad numeric fields
// coerce to 0, never to NaN.
func NormalizeRecord(raw map[string]any) (Record, bool) {
	var date string
	for _, k := range dateKeys {
		if s, ok := raw[k].(string); ok && strings.TrimSpace(s) != "" {
			date = strings.TrimSpace(s)
			break
		}
	}
	if date == "" {
		return Record{}, false
	}
	rec := Record{
		Date:      date,
		Potential: SafeAmount(firstOf(raw, "potential", "fee", "session_fee")),
		Earned:    SafeAmount(firstOf(raw, "earned", "amount")),
	}
	switch v := raw["attended"].(type) {
	case bool:
		rec.Attended = v
	case string:
		rec.Attended = v == "true" || v == "1" || strings.EqualFold(v, "yes")
	case float64:
		rec.Attended = v != 0
	}
	return rec, true
}

// NormalizeAll normalizes raw rows, dropping the dateless ones.
func NormalizeAll(raws []map[string]any) []Record {
	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		if rec, ok := NormalizeRecord(raw); ok {
			records = append(records, rec)
		}
	}
	return records
}

func firstOf(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// SafeAmount parses a money field, defaulting to 0 on anything that is not a
// finite number.
func SafeAmount(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case int:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
