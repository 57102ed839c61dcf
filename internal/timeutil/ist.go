// Package timeutil pins business timestamps to Indian Standard Time. Bores,
// payments and stock movements are dated by the office's calendar day, not
// the server's.
package timeutil

import "time"

// IST is the zone every business timestamp is stamped in.
var IST *time.Location

func init() {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Containers without tzdata still get the right offset.
		loc = time.FixedZone("IST", (5*60+30)*60)
	}
	IST = loc
}

// Now returns the current time in IST.
func Now() time.Time {
	return time.Now().In(IST)
}

// ToIST shifts t into IST.
func ToIST(t time.Time) time.Time {
	return t.In(IST)
}

// ParseInIST parses value using layout, interpreted as IST wall time.
func ParseInIST(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, IST)
}

// FormatIST formats t in IST using layout.
func FormatIST(t time.Time, layout string) string {
	return t.In(IST).Format(layout)
}

// StartOfDay returns midnight of t's IST calendar day.
func StartOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// EndOfDay returns the last nanosecond of t's IST calendar day.
func EndOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 23, 59, 59, 999999999, IST)
}

// Layouts used across reports and API responses.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
