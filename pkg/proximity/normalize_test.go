package proximity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePersonNestedLocation(t *testing.T) {
	raw := map[string]any{
		"id":   float64(7),
		"name": "Asha",
		"location": map[string]any{
			"latitude":  23.0225,
			"longitude": 72.5714,
			"accuracy":  12.5,
			"timestamp": "2024-03-01T10:00:00Z",
		},
	}
	p := NormalizePerson(raw, "Therapist", 0)
	assert.Equal(t, "7", p.ID)
	assert.Equal(t, "Asha", p.Name)
	require.True(t, p.Located())
	assert.Equal(t, 23.0225, p.Coord.Latitude)
	assert.Equal(t, 72.5714, p.Coord.Longitude)
	assert.Equal(t, 12.5, p.Coord.AccuracyMeters)
	assert.NotZero(t, p.Coord.RecordedAtUnix)
}

func TestNormalizePersonFlatStringCoords(t *testing.T) {
	raw := map[string]any{
		"user_id":   "42",
		"full_name": "Ravi Kumar",
		"latitude":  "23.0226",
		"longitude": "72.5714",
	}
	p := NormalizePerson(raw, "Therapist", 3)
	assert.Equal(t, "42", p.ID)
	assert.Equal(t, "Ravi Kumar", p.Name)
	require.True(t, p.Located())
	assert.Equal(t, 23.0226, p.Coord.Latitude)
}

func TestNormalizePersonLatLngShortKeys(t *testing.T) {
	raw := map[string]any{"id": "x1", "username": "meera", "lat": 22.9, "lng": 72.4}
	p := NormalizePerson(raw, "Patient", 0)
	require.True(t, p.Located())
	assert.Equal(t, "meera", p.Name)
}

func TestNormalizePersonNameFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"name wins", map[string]any{"name": "A", "full_name": "B", "username": "c"}, "A"},
		{"full_name next", map[string]any{"full_name": "B", "username": "c"}, "B"},
		{"username next", map[string]any{"username": "c", "email": "c@x.io"}, "c"},
		{"email next", map[string]any{"email": "c@x.io"}, "c@x.io"},
		{"placeholder", map[string]any{}, "Therapist 5"},
		{"blank name falls through", map[string]any{"name": "  ", "username": "c"}, "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NormalizePerson(tt.raw, "Therapist", 4)
			assert.Equal(t, tt.want, p.Name)
		})
	}
}

func TestNormalizePersonUnparseableCoordsSkipped(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"missing entirely", map[string]any{"id": "1"}},
		{"garbage strings", map[string]any{"latitude": "abc", "longitude": "72.5"}},
		{"only latitude", map[string]any{"latitude": 23.0}},
		{"nan latitude", map[string]any{"latitude": "NaN", "longitude": "72.5"}},
		{"null values", map[string]any{"latitude": nil, "longitude": nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NormalizePerson(tt.raw, "Patient", 0)
			assert.False(t, p.Located())
		})
	}
}

// A stray numeric field must not leak into coordinates when the real
// lat/lng fields are absent.
func TestNormalizePersonIgnoresUnrelatedNumericFields(t *testing.T) {
	raw := map[string]any{"id": float64(3), "age": float64(45), "fee": "250"}
	p := NormalizePerson(raw, "Patient", 2)
	assert.False(t, p.Located())
	assert.Equal(t, "Patient 3", p.Name)
}

func TestNormalizeAllFromDecodedJSON(t *testing.T) {
	payload := `[
		{"id": 1, "name": "Asha", "location": {"latitude": 23.0225, "longitude": 72.5714}},
		{"id": 2, "name": "No Coords"},
		{"id": "3", "latitude": "23.03", "longitude": "72.58"}
	]`
	var raws []map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &raws))
	people := NormalizeAll(raws, "Therapist")
	require.Len(t, people, 3)
	assert.True(t, people[0].Located())
	assert.False(t, people[1].Located())
	assert.True(t, people[2].Located())

	// Unlocated people stay in the list but never produce alerts or bounds.
	alerts := ComputeAlerts(people, nil, 1e9)
	for _, a := range alerts {
		assert.NotEqual(t, "2", a.PersonA.ID)
		assert.NotEqual(t, "2", a.PersonB.ID)
	}
	_, ok := ComputeBounds([]Person{people[1]})
	assert.False(t, ok)
}
