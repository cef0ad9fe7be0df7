package proximity

import (
	"physiohub/pkg/location"
)

// Alert categories.
const (
	CategoryTherapistTherapist = "therapist-therapist"
	CategoryTherapistPatient   = "therapist-patient"
)

// Coordinate is a resolved lat/lng with optional accuracy and capture time.
type Coordinate struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AccuracyMeters float64 `json:"accuracy_meters,omitempty"`
	RecordedAtUnix int64   `json:"recorded_at,omitempty"`
}

// Person is a therapist or patient after boundary normalization. Coord is nil
// when no finite lat/lng could be resolved; such people stay in UI lists but
// never enter the pairwise scan or the bounds.
type Person struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Coord *Coordinate `json:"coord,omitempty"`
}

// Located reports whether the person has resolvable coordinates.
func (p Person) Located() bool { return p.Coord != nil }

// Alert is a derived, transient record for a pair closer than the threshold.
// Recomputed in full on every refresh, never persisted.
type Alert struct {
	Category       string  `json:"category"`
	PersonA        Person  `json:"person_a"`
	PersonB        Person  `json:"person_b"`
	DistanceMeters float64 `json:"distance_meters"`
}

// ComputeAlerts scans every unordered therapist pair (i < j) and every
// therapist x patient pair, and emits an Alert for each pair whose
// great-circle distance is at or under thresholdMeters. People without
// coordinates are skipped silently. Callers must pass the full unfiltered
// patient list: display filters must never hide safety alerts.
//
// O(T² + T·P); fine at clinic scale (tens of people), not a general
// collision detector.
func ComputeAlerts(therapists, patients []Person, thresholdMeters float64) []Alert {
	alerts := []Alert{}
	for i := 0; i < len(therapists); i++ {
		a := therapists[i]
		if !a.Located() {
			continue
		}
		for j := i + 1; j < len(therapists); j++ {
			b := therapists[j]
			if !b.Located() {
				continue
			}
			if d := distance(a, b); d <= thresholdMeters {
				alerts = append(alerts, Alert{
					Category:       CategoryTherapistTherapist,
					PersonA:        a,
					PersonB:        b,
					DistanceMeters: d,
				})
			}
		}
		for _, p := range patients {
			if !p.Located() {
				continue
			}
			if d := distance(a, p); d <= thresholdMeters {
				alerts = append(alerts, Alert{
					Category:       CategoryTherapistPatient,
					PersonA:        a,
					PersonB:        p,
					DistanceMeters: d,
				})
			}
		}
	}
	return alerts
}

func distance(a, b Person) float64 {
	return location.HaversineMeters(
		a.Coord.Latitude, a.Coord.Longitude,
		b.Coord.Latitude, b.Coord.Longitude,
	)
}

// Bounds is the min/max lat/lng rectangle covering all located people,
// used by the map view to fit its viewport.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// ComputeBounds returns the bounding box over every located person in the
// given groups. ok is false when nobody has coordinates.
func ComputeBounds(groups ...[]Person) (Bounds, bool) {
	var b Bounds
	found := false
	for _, group := range groups {
		for _, p := range group {
			if !p.Located() {
				continue
			}
			c := p.Coord
			if !found {
				b = Bounds{MinLat: c.Latitude, MaxLat: c.Latitude, MinLng: c.Longitude, MaxLng: c.Longitude}
				found = true
				continue
			}
			if c.Latitude < b.MinLat {
				b.MinLat = c.Latitude
			}
			if c.Latitude > b.MaxLat {
				b.MaxLat = c.Latitude
			}
			if c.Longitude < b.MinLng {
				b.MinLng = c.Longitude
			}
			if c.Longitude > b.MaxLng {
				b.MaxLng = c.Longitude
			}
		}
	}
	return b, found
}
