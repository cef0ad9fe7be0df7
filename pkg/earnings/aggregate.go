// Package earnings turns flat session/earning records into the per-day
// rollups and period summary shown on the earnings dashboards. Pure and
// synchronous; recomputed from scratch on every request, nothing cached.
package earnings

import "sort"

// Record is a single session/earning event. Earned is only meaningful when
// Attended is true. earned <= potential is assumed upstream but not enforced
// here (see DESIGN.md).
type Record struct {
	Date      string  `json:"date"`
	Potential float64 `json:"potential"`
	Attended  bool    `json:"attended"`
	Earned    float64 `json:"earned"`
}

// DailyAggregate is the per-calendar-day rollup.
type DailyAggregate struct {
	Date           string  `json:"date"`
	Sessions       int     `json:"sessions"`
	Attended       int     `json:"attended"`
	TotalEarned    float64 `json:"total_earned"`
	TotalPotential float64 `json:"total_potential"`
}

// Summary covers the whole period.
type Summary struct {
	TotalSessions     int     `json:"total_sessions"`
	AttendedCount     int     `json:"attended_count"`
	TotalEarned       float64 `json:"total_earned"`
	TotalPotential    float64 `json:"total_potential"`
	MissedEarnings    float64 `json:"missed_earnings"`
	AttendanceRate    float64 `json:"attendance_rate"`
	AveragePerSession float64 `json:"average_per_session"`
}

// Result pairs the chronological daily rollups with the period summary.
type Result struct {
	Daily   []DailyAggregate `json:"daily"`
	Summary Summary          `json:"summary"`
}

// AggregateByDate groups records by calendar date, accumulates counts and
// sums per day, sorts days ascending, and derives the period summary. Rates
// are defined as 0 when their denominator is 0 so an empty period never
// yields NaN.
func AggregateByDate(records []Record) Result {
	byDate := make(map[string]*DailyAggregate)
	var summary Summary
	for _, rec := range records {
		if rec.Date == "" {
			// No date, no group to key it under.
			continue
		}
		day := byDate[rec.Date]
		if day == nil {
			day = &DailyAggregate{Date: rec.Date}
			byDate[rec.Date] = day
		}
		day.Sessions++
		day.TotalPotential += rec.Potential
		summary.TotalSessions++
		summary.TotalPotential += rec.Potential
		if rec.Attended {
			day.Attended++
			day.TotalEarned += rec.Earned
			summary.AttendedCount++
			summary.TotalEarned += rec.Earned
		}
	}

	daily := make([]DailyAggregate, 0, len(byDate))
	for _, day := range byDate {
		daily = append(daily, *day)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	summary.MissedEarnings = summary.TotalPotential - summary.TotalEarned
	if summary.TotalSessions > 0 {
		summary.AttendanceRate = float64(summary.AttendedCount) / float64(summary.TotalSessions) * 100
	}
	if summary.AttendedCount > 0 {
		summary.AveragePerSession = summary.TotalEarned / float64(summary.AttendedCount)
	}
	return Result{Daily: daily, Summary: summary}
}
