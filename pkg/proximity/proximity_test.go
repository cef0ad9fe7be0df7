package proximity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func located(id, name string, lat, lng float64) Person {
	return Person{ID: id, Name: name, Coord: &Coordinate{Latitude: lat, Longitude: lng}}
}

func TestComputeAlertsTherapistPairWithinThreshold(t *testing.T) {
	therapists := []Person{
		located("t1", "Asha", 23.0225, 72.5714),
		located("t2", "Ravi", 23.0226, 72.5714), // ~11m away
	}
	alerts := ComputeAlerts(therapists, nil, 100)
	require.Len(t, alerts, 1)
	assert.Equal(t, CategoryTherapistTherapist, alerts[0].Category)
	assert.Equal(t, "t1", alerts[0].PersonA.ID)
	assert.Equal(t, "t2", alerts[0].PersonB.ID)
	assert.Less(t, alerts[0].DistanceMeters, 100.0)
	assert.Greater(t, alerts[0].DistanceMeters, 10.0)
}

func TestComputeAlertsThresholdTooTight(t *testing.T) {
	therapists := []Person{
		located("t1", "Asha", 23.0225, 72.5714),
		located("t2", "Ravi", 23.0226, 72.5714),
	}
	assert.Empty(t, ComputeAlerts(therapists, nil, 5))
}

func TestComputeAlertsTherapistPatientCategory(t *testing.T) {
	therapists := []Person{located("t1", "Asha", 23.0225, 72.5714)}
	patients := []Person{
		located("p1", "Meera", 23.0225, 72.5715),  // ~10m
		located("p2", "Far Patient", 24.0, 73.0),  // way out of range
	}
	alerts := ComputeAlerts(therapists, patients, 100)
	require.Len(t, alerts, 1)
	assert.Equal(t, CategoryTherapistPatient, alerts[0].Category)
	assert.Equal(t, "p1", alerts[0].PersonB.ID)
}

func TestComputeAlertsMixedCategories(t *testing.T) {
	therapists := []Person{
		located("t1", "Asha", 23.0225, 72.5714),
		located("t2", "Ravi", 23.0226, 72.5714),
	}
	patients := []Person{located("p1", "Meera", 23.0225, 72.5715)}
	alerts := ComputeAlerts(therapists, patients, 200)
	// t1-t2 pair, plus each therapist against the patient.
	require.Len(t, alerts, 3)
	categories := map[string]int{}
	for _, a := range alerts {
		categories[a.Category]++
	}
	assert.Equal(t, 1, categories[CategoryTherapistTherapist])
	assert.Equal(t, 2, categories[CategoryTherapistPatient])
}

func TestComputeAlertsSkipsUnlocatedPeople(t *testing.T) {
	therapists := []Person{
		located("t1", "Asha", 23.0225, 72.5714),
		{ID: "t2", Name: "No Location"},
	}
	patients := []Person{{ID: "p1", Name: "Also Missing"}}
	assert.Empty(t, ComputeAlerts(therapists, patients, 1e9))
}

func TestComputeAlertsNoSelfPairs(t *testing.T) {
	therapists := []Person{located("t1", "Asha", 23.0225, 72.5714)}
	assert.Empty(t, ComputeAlerts(therapists, nil, 1e9))
}

func TestComputeBounds(t *testing.T) {
	therapists := []Person{
		located("t1", "Asha", 23.0, 72.5),
		located("t2", "Ravi", 23.5, 72.0),
		{ID: "t3", Name: "No Location"},
	}
	patients := []Person{located("p1", "Meera", 22.8, 73.0)}
	b, ok := ComputeBounds(therapists, patients)
	require.True(t, ok)
	assert.Equal(t, 22.8, b.MinLat)
	assert.Equal(t, 23.5, b.MaxLat)
	assert.Equal(t, 72.0, b.MinLng)
	assert.Equal(t, 73.0, b.MaxLng)
}

func TestComputeBoundsNobodyLocated(t *testing.T) {
	_, ok := ComputeBounds([]Person{{ID: "t1"}}, nil)
	assert.False(t, ok)
}
