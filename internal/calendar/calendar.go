// Package calendar knows which dates the US equity market trades on.
package calendar

import "time"

// LastTradingDay returns the most recent NYSE trading day on or before d,
// truncated to UTC midnight.
func LastTradingDay(d time.Time) time.Time {
	d = truncateToDate(d)
	for !IsTradingDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsTradingDay excludes weekends and the regular NYSE holidays.
func IsTradingDay(d time.Time) bool {
	d = truncateToDate(d)
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	_, holiday := holidays(d.Year())[d]
	return !holiday
}

// holidays lists the observed NYSE full-day closures for a year.
func holidays(year int) map[time.Time]struct{} {
	easter := easterSunday(year)
	days := []time.Time{
		observed(date(year, time.January, 1)),
		nthWeekday(year, time.January, time.Monday, 3),    // MLK Day
		nthWeekday(year, time.February, time.Monday, 3),   // Presidents' Day
		easter.AddDate(0, 0, -2),                          // Good Friday
		lastWeekday(year, time.May, time.Monday),          // Memorial Day
		observed(date(year, time.July, 4)),                // Independence Day
		nthWeekday(year, time.September, time.Monday, 1),  // Labor Day
		nthWeekday(year, time.November, time.Thursday, 4), // Thanksgiving
		observed(date(year, time.December, 25)),           // Christmas
	}
	if year >= 2022 {
		days = append(days, observed(date(year, time.June, 19))) // Juneteenth
	}
	out := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		out[d] = struct{}{}
	}
	return out
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// observed moves Saturday holidays to Friday and Sunday holidays to Monday.
// New Year's Day on a Saturday is not observed on the prior Friday by NYSE.
func observed(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		if d.Month() == time.January && d.Day() == 1 {
			return time.Time{}
		}
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}

func nthWeekday(year int, m time.Month, wd time.Weekday, n int) time.Time {
	d := date(year, m, 1)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return d.AddDate(0, 0, 7*(n-1))
}

func lastWeekday(year int, m time.Month, wd time.Weekday) time.Time {
	d := date(year, m+1, 1).AddDate(0, 0, -1)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// easterSunday returns the date of Easter Sunday for a given year
// (Meeus/Jones/Butcher algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return date(year, time.Month(month), day)
}
