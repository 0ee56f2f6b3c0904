package gametime

import (
	"fmt"
	"math"
	"strings"
)

const (
	MinutesPerHour = 60
	HoursPerDay    = 24
	SeasonsPerYear = 4
	MinutesPerDay  = MinutesPerHour * HoursPerDay

	DefaultDaysPerSeason = 30
	DefaultTimeScale     = 60.0

	DayStartHour   = 6
	NightStartHour = 20
)

// Season is the index of a season within a year
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

var seasonNames = [SeasonsPerYear]string{"Spring", "Summer", "Autumn", "Winter"}

func (s Season) String() string {
	if s < 0 || int(s) >= SeasonsPerYear {
		return fmt.Sprintf("Season(%d)", int(s))
	}
	return seasonNames[s]
}

// ParseSeason resolves a season by case-insensitive name
func ParseSeason(name string) (Season, error) {
	for i, n := range seasonNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Season(i), nil
		}
	}
	return 0, fmt.Errorf("unknown season: %q", name)
}

// Calendar is a point in game time.
// Minute accumulates fractional values; the other fields are whole units.
type Calendar struct {
	Minute float64
	Hour   int
	Day    int
	Season Season
	Year   int
}

// IsDayTime reports whether the calendar hour lies in [6, 20)
func (c Calendar) IsDayTime() bool {
	return c.Hour >= DayStartHour && c.Hour < NightStartHour
}

// normalize propagates carries minute → hour → day → season → year.
// Carries are computed in float so minute counts beyond the int range still
// settle every field in range; the year saturates at math.MaxInt.
func (c *Calendar) normalize(daysPerSeason int) {
	if c.Minute < MinutesPerHour && c.Hour < HoursPerDay && c.Day <= daysPerSeason && c.Season < SeasonsPerYear {
		return
	}

	hours := float64(c.Hour) + math.Floor(c.Minute/MinutesPerHour)
	c.Minute = math.Mod(c.Minute, MinutesPerHour)

	days := float64(c.Day-1) + math.Floor(hours/HoursPerDay)
	c.Hour = int(math.Mod(hours, HoursPerDay))

	seasons := float64(c.Season) + math.Floor(days/float64(daysPerSeason))
	c.Day = int(math.Mod(days, float64(daysPerSeason))) + 1

	years := float64(c.Year) + math.Floor(seasons/SeasonsPerYear)
	c.Season = Season(math.Mod(seasons, SeasonsPerYear))

	if years >= math.MaxInt {
		c.Year = math.MaxInt
	} else {
		c.Year = int(years)
	}
}

// TimeString formats the calendar as "HH:MM AM/PM" with a zero-padded 12-hour clock
func (c Calendar) TimeString() string {
	hour12 := c.Hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	ampm := "AM"
	if c.Hour >= 12 {
		ampm = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", hour12, int(c.Minute), ampm)
}

// DateString formats the calendar as "Day d of Season, Year y"
func (c Calendar) DateString() string {
	return fmt.Sprintf("Day %d of %s, Year %d", c.Day, c.Season, c.Year)
}
