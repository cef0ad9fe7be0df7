package handler

import (
	"testing"
	"time"

	"physiohub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func therapistRow(id uint, name string, loc *models.UserLocation) models.TherapistProfile {
	return models.TherapistProfile{
		ID:   id,
		User: models.User{FullName: name, Location: loc},
	}
}

func patientRow(id uint, name string, therapistID *uint, loc *models.UserLocation) models.PatientProfile {
	return models.PatientProfile{
		ID:          id,
		TherapistID: therapistID,
		User:        models.User{FullName: name, Location: loc},
	}
}

func locAt(lat, lng float64) *models.UserLocation {
	return &models.UserLocation{Latitude: lat, Longitude: lng, LastUpdatedAt: time.Now()}
}

func TestTherapistPersons(t *testing.T) {
	rows := []models.TherapistProfile{
		therapistRow(1, "Asha", locAt(23.0225, 72.5714)),
		therapistRow(2, "Ben", nil),
	}
	people := therapistPersons(rows)
	require.Len(t, people, 2)

	assert.Equal(t, "1", people[0].ID)
	assert.Equal(t, "Asha", people[0].Name)
	require.True(t, people[0].Located())
	assert.Equal(t, 23.0225, people[0].Coord.Latitude)

	// No stored location means no coordinate, but the person stays listed.
	assert.Equal(t, "2", people[1].ID)
	assert.False(t, people[1].Located())
}

func TestFilterByTherapist(t *testing.T) {
	tid := uint(1)
	other := uint(2)
	therapists := []models.TherapistProfile{
		therapistRow(1, "Asha", locAt(23.0225, 72.5714)),
		therapistRow(2, "Ben", locAt(23.0300, 72.5800)),
	}
	patients := []models.PatientProfile{
		patientRow(10, "Pia", &tid, locAt(23.0226, 72.5714)),
		patientRow(11, "Quinn", &other, locAt(23.0301, 72.5800)),
		patientRow(12, "Ravi", nil, locAt(23.0400, 72.5900)),
	}

	gotT, gotP := filterByTherapist(1, therapists, patients)
	require.Len(t, gotT, 1)
	assert.Equal(t, "Asha", gotT[0].Name)
	require.Len(t, gotP, 1)
	assert.Equal(t, "Pia", gotP[0].Name)
}

func TestFilterByTherapist_UnknownID(t *testing.T) {
	therapists := []models.TherapistProfile{therapistRow(1, "Asha", nil)}
	patients := []models.PatientProfile{patientRow(10, "Pia", nil, nil)}

	gotT, gotP := filterByTherapist(99, therapists, patients)
	assert.Empty(t, gotT)
	assert.Empty(t, gotP)
}
