package output

import (
	"math"
	"time"
)

// dateEpoch is day zero of the stored date format
var dateEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// DateTime converts a stored day count to a UTC time rounded to the second
func DateTime(days float64) time.Time {
	whole := math.Floor(days)
	secs := math.Round((days - whole) * 86400)
	return dateEpoch.AddDate(0, 0, int(whole)).Add(time.Duration(secs) * time.Second)
}

// DayCount is the inverse of DateTime
func DayCount(t time.Time) float64 {
	d := t.UTC().Sub(dateEpoch)
	return d.Hours() / 24
}
