package ferrytime

import "time"

const (
	MinutesPerDay = 24 * 60
	Noon          = 12 * 60

	// MorningCutoff is 2:30am. WSDOT considers anything before it part of the previous day.
	MorningCutoff = 150
)

// ServiceTime is minutes past midnight, with early morning departures pushed past 24:00 so that
// they sort after the previous evening.
type ServiceTime int

func AdjustTime(minutes int) ServiceTime {
	if minutes < MorningCutoff {
		return ServiceTime(minutes + MinutesPerDay)
	}

	return ServiceTime(minutes)
}

func FromTime(t time.Time) ServiceTime {
	return AdjustTime(t.Hour()*60 + t.Minute())
}

func Now(clock Clock) ServiceTime {
	return FromTime(clock.Now())
}

// ServiceDay returns midnight of the calendar day a wall clock time belongs to for scheduling
func ServiceDay(t time.Time) time.Time {
	if t.Hour()*60+t.Minute() < MorningCutoff {
		t = t.AddDate(0, 0, -1)
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
