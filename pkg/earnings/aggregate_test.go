package earnings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateByDateEmpty(t *testing.T) {
	res := AggregateByDate(nil)
	assert.Empty(t, res.Daily)
	assert.Equal(t, Summary{}, res.Summary)
	// No division-by-zero artifacts.
	assert.Equal(t, 0.0, res.Summary.AttendanceRate)
	assert.Equal(t, 0.0, res.Summary.AveragePerSession)
}

func TestAggregateByDateSingleDay(t *testing.T) {
	res := AggregateByDate([]Record{
		{Date: "2024-01-01", Potential: 100, Attended: true, Earned: 80},
		{Date: "2024-01-01", Potential: 50, Attended: false, Earned: 0},
	})
	require.Len(t, res.Daily, 1)
	day := res.Daily[0]
	assert.Equal(t, "2024-01-01", day.Date)
	assert.Equal(t, 2, day.Sessions)
	assert.Equal(t, 1, day.Attended)
	assert.Equal(t, 80.0, day.TotalEarned)
	assert.Equal(t, 150.0, day.TotalPotential)

	assert.Equal(t, 50.0, res.Summary.AttendanceRate)
	assert.Equal(t, 80.0, res.Summary.TotalEarned)
	assert.Equal(t, 150.0, res.Summary.TotalPotential)
	assert.Equal(t, 70.0, res.Summary.MissedEarnings)
	assert.Equal(t, 80.0, res.Summary.AveragePerSession)
}

func TestAggregateByDateSortsDaysAscending(t *testing.T) {
	res := AggregateByDate([]Record{
		{Date: "2024-01-03", Potential: 10, Attended: true, Earned: 10},
		{Date: "2024-01-01", Potential: 10, Attended: true, Earned: 10},
		{Date: "2024-01-02", Potential: 10, Attended: true, Earned: 10},
		{Date: "2024-01-01", Potential: 10, Attended: false},
	})
	require.Len(t, res.Daily, 3)
	assert.Equal(t, "2024-01-01", res.Daily[0].Date)
	assert.Equal(t, "2024-01-02", res.Daily[1].Date)
	assert.Equal(t, "2024-01-03", res.Daily[2].Date)
	assert.Equal(t, 2, res.Daily[0].Sessions)
}

func TestAggregateByDateSkipsDatelessRecords(t *testing.T) {
	res := AggregateByDate([]Record{
		{Date: "", Potential: 100, Attended: true, Earned: 100},
		{Date: "2024-02-10", Potential: 40, Attended: true, Earned: 40},
	})
	require.Len(t, res.Daily, 1)
	assert.Equal(t, 1, res.Summary.TotalSessions)
	assert.Equal(t, 40.0, res.Summary.TotalEarned)
}

func TestAggregateByDateEarnedIgnoredWhenNotAttended(t *testing.T) {
	// Earned carries meaning only for attended sessions; a stray value on a
	// missed session must not inflate totals.
	res := AggregateByDate([]Record{
		{Date: "2024-03-01", Potential: 60, Attended: false, Earned: 60},
	})
	assert.Equal(t, 0.0, res.Summary.TotalEarned)
	assert.Equal(t, 60.0, res.Summary.TotalPotential)
	assert.Equal(t, 0.0, res.Summary.AttendanceRate)
	assert.Equal(t, 0.0, res.Summary.AveragePerSession)
}

func TestAggregateByDateFullyAttended(t *testing.T) {
	res := AggregateByDate([]Record{
		{Date: "2024-04-01", Potential: 100, Attended: true, Earned: 100},
		{Date: "2024-04-02", Potential: 100, Attended: true, Earned: 90},
	})
	assert.Equal(t, 100.0, res.Summary.AttendanceRate)
	assert.Equal(t, 95.0, res.Summary.AveragePerSession)
	assert.Equal(t, 10.0, res.Summary.MissedEarnings)
}
