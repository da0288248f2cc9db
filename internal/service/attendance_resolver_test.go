package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAttendanceDerivedTotal(t *testing.T) {
	got := ResolveAttendance(AttendanceInput{Present: 10, Late: 2, Absent: 1, JustifiedAbsent: 1}, "")

	assert.Equal(t, 12, got.Attended)
	assert.Equal(t, 2, got.NotAttended)
	assert.Equal(t, 14, got.Total)
	assert.InDelta(t, 0.857, got.AttendanceRate, 0.001)
	assert.InDelta(t, 0.143, got.AbsenceRate, 0.001)
}

func TestResolveAttendanceOverrideWins(t *testing.T) {
	got := ResolveAttendance(AttendanceInput{Present: 10, Late: 2, Absent: 1, JustifiedAbsent: 1}, "20")

	assert.Equal(t, 20, got.Total)
	assert.InDelta(t, 0.6, got.AttendanceRate, 0.001)
}

func TestResolveAttendanceIgnoresEmptyAndZeroOverride(t *testing.T) {
	for _, override := range []string{"", " ", "0", "abc"} {
		got := ResolveAttendance(AttendanceInput{Present: 3, Absent: 1}, override)
		assert.Equal(t, 4, got.Total, "override %q", override)
	}
}

func TestResolveAttendanceZeroTotalGuardsRates(t *testing.T) {
	got := ResolveAttendance(AttendanceInput{}, "")

	assert.Equal(t, 0, got.Total)
	assert.Zero(t, got.AttendanceRate)
	assert.Zero(t, got.AbsenceRate)
}
