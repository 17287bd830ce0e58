package task

import "time"

// Host date layouts. The task endpoint expects these literal forms.
const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// DueDate carries the derived due timestamp in the representations the host
// endpoint expects.
type DueDate struct {
	// DateOnly is the due calendar date in UTC, "2006-01-02".
	DateOnly string

	// LocalTimestamp is the due date with the current local wall-clock time
	// of day appended, "2006-01-02 15:04:05". The time of day is preserved
	// rather than truncated to midnight.
	LocalTimestamp string

	// TimeZone is the IANA zone name of loc.
	TimeZone string
}

// ComputeDueDate derives a due timestamp from the creation instant and a
// non-negative offset in days. A nil loc falls back to the system zone.
func ComputeDueDate(now time.Time, offsetDays int, loc *time.Location) DueDate {
	if offsetDays < 0 {
		offsetDays = 0
	}
	if loc == nil {
		loc = time.Local
	}

	dateOnly := now.UTC().AddDate(0, 0, offsetDays).Format(dateLayout)
	localTime := now.In(loc).Format("15:04:05")

	return DueDate{
		DateOnly:       dateOnly,
		LocalTimestamp: dateOnly + " " + localTime,
		TimeZone:       loc.String(),
	}
}
