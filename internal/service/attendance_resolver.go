package service

import (
	"strconv"
	"strings"

	"github.com/noah-isme/boleta-api/internal/models"
)

// AttendanceInput is the raw aggregate fetched from the attendance store.
type AttendanceInput = models.AttendanceCounts

// ResolveAttendance merges the live aggregate with the stored diasHabiles
// override into a single snapshot. Late arrivals count as attended;
// justified absences count as not attended. The override wins over the
// derived total only when it parses to a positive number. Manual display
// strings are handled elsewhere and deliberately never reach these
// formulas.
func ResolveAttendance(in AttendanceInput, diasHabiles string) models.AttendanceSnapshot {
	attended := in.Present + in.Late
	notAttended := in.Absent + in.JustifiedAbsent

	total := attended + notAttended
	if override, ok := parseDiasHabiles(diasHabiles); ok {
		total = override
	}

	snapshot := models.AttendanceSnapshot{
		Present:         in.Present,
		Late:            in.Late,
		Absent:          in.Absent,
		JustifiedAbsent: in.JustifiedAbsent,
		Attended:        attended,
		NotAttended:     notAttended,
		Total:           total,
	}
	if total > 0 {
		snapshot.AttendanceRate = float64(attended) / float64(total)
		snapshot.AbsenceRate = float64(notAttended) / float64(total)
	}
	return snapshot
}

func parseDiasHabiles(value string) (int, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
