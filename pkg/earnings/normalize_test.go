package earnings

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecordBasic(t *testing.T) {
	rec, ok := NormalizeRecord(map[string]any{
		"date":      "2024-01-01",
		"potential": 100.0,
		"attended":  true,
		"earned":    80.0,
	})
	require.True(t, ok)
	assert.Equal(t, Record{Date: "2024-01-01", Potential: 100, Attended: true, Earned: 80}, rec)
}

func TestNormalizeRecordDateKeyFallbacks(t *testing.T) {
	for _, key := range []string{"date", "session_date", "day"} {
		rec, ok := NormalizeRecord(map[string]any{key: "2024-05-05"})
		require.True(t, ok, key)
		assert.Equal(t, "2024-05-05", rec.Date)
	}
}

func TestNormalizeRecordMissingDateSkipped(t *testing.T) {
	_, ok := NormalizeRecord(map[string]any{"potential": 100.0, "attended": true})
	assert.False(t, ok)
	_, ok = NormalizeRecord(map[string]any{"date": "   "})
	assert.False(t, ok)
}

func TestNormalizeRecordNonNumericEarnedCoercedToZero(t *testing.T) {
	rec, ok := NormalizeRecord(map[string]any{
		"date":      "2024-01-01",
		"potential": "100",
		"attended":  true,
		"earned":    "abc",
	})
	require.True(t, ok)
	assert.Equal(t, 0.0, rec.Earned)
	assert.Equal(t, 100.0, rec.Potential)

	// And zero, not NaN, flows into the summary.
	res := AggregateByDate([]Record{rec})
	assert.False(t, math.IsNaN(res.Summary.TotalEarned))
	assert.Equal(t, 0.0, res.Summary.TotalEarned)
}

func TestNormalizeRecordAttendedCoercions(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"1", true},
		{"yes", true},
		{"no", false},
		{float64(1), true},
		{float64(0), false},
		{nil, false},
	}
	for _, tt := range tests {
		rec, ok := NormalizeRecord(map[string]any{"date": "2024-01-01", "attended": tt.value})
		require.True(t, ok)
		assert.Equal(t, tt.want, rec.Attended, "attended=%v", tt.value)
	}
}

func TestNormalizeAllFromDecodedJSON(t *testing.T) {
	payload := `[
		{"date": "2024-01-01", "fee": "100", "attended": true, "amount": 80},
		{"potential": 50, "attended": false},
		{"session_date": "2024-01-02", "session_fee": 50, "attended": "1", "earned": "50"}
	]`
	var raws []map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &raws))
	records := NormalizeAll(raws)
	require.Len(t, records, 2)
	assert.Equal(t, 100.0, records[0].Potential)
	assert.Equal(t, 80.0, records[0].Earned)
	assert.Equal(t, "2024-01-02", records[1].Date)
	assert.True(t, records[1].Attended)
}

func TestSafeAmount(t *testing.T) {
	assert.Equal(t, 12.5, SafeAmount(12.5))
	assert.Equal(t, 12.5, SafeAmount("12.5"))
	assert.Equal(t, 12.0, SafeAmount(12))
	assert.Equal(t, 0.0, SafeAmount("abc"))
	assert.Equal(t, 0.0, SafeAmount(nil))
	assert.Equal(t, 0.0, SafeAmount(math.NaN()))
	assert.Equal(t, 0.0, SafeAmount(math.Inf(1)))
	n := json.Number("7.25")
	assert.Equal(t, 7.25, SafeAmount(n))
}
