package proximity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Upstream person payloads arrive in several shapes depending on which API
// produced them: a nested "location" object, flat latitude/longitude fields,
// or abbreviated lat/lng keys; numbers may be encoded as strings. Normalize
// everything to a canonical Person here, once, so the scan logic never deals
// with raw maps.

var idKeys = []string{"id", "user_id", "therapist_id", "patient_id"}
var nameKeys = []string{"name", "full_name", "username", "email"}

// NormalizePerson resolves id, display name and coordinates from a raw
// decoded payload. role ("Therapist"/"Patient") and index feed the name
// placeholder so every alert stays human-readable even with sparse data.
// Unresolvable coordinates leave Coord nil; nothing here ever errors.
func NormalizePerson(raw map[string]any, role string, index int) Person {
	p := Person{
		ID:   resolveID(raw, index),
		Name: resolveName(raw, role, index),
	}
	if c, ok := resolveCoordinate(raw); ok {
		p.Coord = &c
	}
	return p
}

// NormalizeAll normalizes a slice of raw payloads in order.
func NormalizeAll(raws []map[string]any, role string) []Person {
	people := make([]Person, 0, len(raws))
	for i, raw := range raws {
		people = append(people, NormalizePerson(raw, role, i))
	}
	return people
}

func resolveID(raw map[string]any, index int) string {
	for _, k := range idKeys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch id := v.(type) {
		case string:
			if id != "" {
				return id
			}
		case json.Number:
			return id.String()
		case float64:
			return strconv.FormatInt(int64(id), 10)
		case int:
			return strconv.Itoa(id)
		case uint:
			return strconv.FormatUint(uint64(id), 10)
		}
	}
	return fmt.Sprintf("unknown-%d", index+1)
}

func resolveName(raw map[string]any, role string, index int) string {
	for _, k := range nameKeys {
		if s, ok := raw[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return fmt.Sprintf("%s %d", role, index+1)
}

func resolveCoordinate(raw map[string]any) (Coordinate, bool) {
	// Nested location object wins over flat fields.
	if loc, ok := raw["location"].(map[string]any); ok {
		if c, ok := coordFromFields(loc); ok {
			return c, true
		}
	}
	return coordFromFields(raw)
}

func coordFromFields(m map[string]any) (Coordinate, bool) {
	lat, okLat := parseFinite(m["latitude"])
	lng, okLng := parseFinite(m["longitude"])
	if !okLat || !okLng {
		lat, okLat = parseFinite(m["lat"])
		lng, okLng = parseFinite(m["lng"])
	}
	if !okLat || !okLng {
		return Coordinate{}, false
	}
	c := Coordinate{Latitude: lat, Longitude: lng}
	if acc, ok := parseFinite(m["accuracy"]); ok {
		c.AccuracyMeters = acc
	} else if acc, ok := parseFinite(m["accuracy_meters"]); ok {
		c.AccuracyMeters = acc
	}
	if ts, ok := m["timestamp"].(string); ok {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			c.RecordedAtUnix = t.Unix()
		}
	} else if ts, ok := parseFinite(m["timestamp"]); ok {
		c.RecordedAtUnix = int64(ts)
	}
	return c, true
}

// parseFinite accepts float64, json.Number, int and numeric strings; anything
// else, or NaN/Inf, fails the parse and the entry is skipped.
func parseFinite(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case int:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
