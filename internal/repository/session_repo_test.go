package repository

import (
	"testing"

	"physiohub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *SessionRepository) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return mock, NewSessionRepository(db)
}

func sessionColumns() []string {
	return []string{"id", "appointment_id", "plan_id", "therapist_id", "patient_id", "date", "fee", "attended", "earned", "marked_by_id"}
}

func TestListByTherapist_DateRange(t *testing.T) {
	mock, repo := setupMockDB(t)

	rows := sqlmock.NewRows(sessionColumns()).
		AddRow(1, nil, nil, 7, 3, "2024-01-01", 100.0, true, 80.0, 2).
		AddRow(2, nil, nil, 7, 4, "2024-01-02", 50.0, false, 0.0, 2)

	mock.ExpectQuery("SELECT \\* FROM `session_records` WHERE therapist_id = \\? AND date >= \\? AND date <= \\?").
		WithArgs(uint(7), "2024-01-01", "2024-01-31").
		WillReturnRows(rows)

	list, err := repo.ListByTherapist(7, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-01-01", list[0].Date)
	assert.True(t, list[0].Attended)
	assert.Equal(t, 80.0, list[0].Earned)
	assert.False(t, list[1].Attended)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByTherapist_OpenBounds(t *testing.T) {
	mock, repo := setupMockDB(t)

	rows := sqlmock.NewRows(sessionColumns()).
		AddRow(1, nil, nil, 7, 3, "2024-01-01", 100.0, true, 100.0, 2)

	// Empty from/to must not add date predicates.
	mock.ExpectQuery("SELECT \\* FROM `session_records` WHERE therapist_id = \\? AND `session_records`.`deleted_at` IS NULL").
		WithArgs(uint(7)).
		WillReturnRows(rows)

	list, err := repo.ListByTherapist(7, "", "")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll_Empty(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `session_records`").
		WillReturnRows(sqlmock.NewRows(sessionColumns()))

	list, err := repo.ListAll("", "")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByPatient(t *testing.T) {
	mock, repo := setupMockDB(t)

	rows := sqlmock.NewRows(sessionColumns()).
		AddRow(9, nil, nil, 7, 3, "2024-02-10", 60.0, true, 60.0, 2)

	mock.ExpectQuery("SELECT \\* FROM `session_records` WHERE patient_id = \\?").
		WithArgs(uint(3)).
		WillReturnRows(rows)

	list, err := repo.ListByPatient(3)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint(7), list[0].TherapistID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEarningsRecordConversion(t *testing.T) {
	s := models.SessionRecord{Date: "2024-03-01", Fee: 70, Attended: true, Earned: 65}
	rec := s.EarningsRecord()
	assert.Equal(t, "2024-03-01", rec.Date)
	assert.Equal(t, 70.0, rec.Potential)
	assert.True(t, rec.Attended)
	assert.Equal(t, 65.0, rec.Earned)
}
