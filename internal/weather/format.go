package weather

import (
	"fmt"
	"strconv"
	"time"
)

// Display holds the user-facing lines for a report, in Hebrew.
type Display struct {
	Location    string `json:"location"`
	Temperature string `json:"temperature"`
	Description string `json:"description"`
	Extra       string `json:"extra"`
}

// hebrewWeekdays are the he-IL short weekday names, indexed by time.Weekday.
var hebrewWeekdays = [...]string{
	time.Sunday:    "יום א׳",
	time.Monday:    "יום ב׳",
	time.Tuesday:   "יום ג׳",
	time.Wednesday: "יום ד׳",
	time.Thursday:  "יום ה׳",
	time.Friday:    "יום ו׳",
	time.Saturday:  "שבת",
}

// NewDisplay formats r for the result slots.
func NewDisplay(r Report) Display {
	return Display{
		Location:    FormatLocation(r.Location),
		Temperature: FormatTemperature(r.Current.Temperature),
		Description: FormatWind(r.Current.WindSpeed, r.Current.WindDirection),
		Extra:       "שעה מקומית: " + FormatLocalTime(r.Current.Time),
	}
}

func FormatLocation(loc Location) string {
	return fmt.Sprintf("%s, %s", loc.Name, loc.Country)
}

func FormatTemperature(c float64) string {
	return formatNumber(c) + "°C"
}

// FormatWind renders wind speed (km/h) and direction (degrees).
func FormatWind(speed, direction float64) string {
	return fmt.Sprintf("רוח: %s קמ״ש, כיוון: %s°", formatNumber(speed), formatNumber(direction))
}

// FormatLocalTime renders t in its own zone as "<weekday>, dd.mm, HH:MM".
func FormatLocalTime(t time.Time) string {
	return fmt.Sprintf("%s, %s", hebrewWeekdays[t.Weekday()], t.Format("02.01, 15:04"))
}

// formatNumber prints the shortest decimal that round-trips. Negative zero
// prints as "0".
func formatNumber(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
