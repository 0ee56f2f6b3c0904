package gametime

import (
	"fmt"
	"math"
	"time"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// State is the persisted form of the clock: the six scalar fields needed to
// rebuild the calendar exactly.
type State struct {
	Minute    float64 `json:"minute"`
	Hour      int     `json:"hour"`
	Day       int     `json:"day"`
	Season    int     `json:"season"`
	Year      int     `json:"year"`
	TimeScale float64 `json:"timeScale"`
}

// DefaultState is the calendar a new game starts from
func DefaultState() State {
	return State{
		Minute:    0,
		Hour:      DayStartHour,
		Day:       1,
		Season:    int(Spring),
		Year:      1,
		TimeScale: DefaultTimeScale,
	}
}

// TimeInfo is a read-only view of the clock for presentation layers
type TimeInfo struct {
	Minute        float64
	Hour          int
	Day           int
	Season        string
	SeasonIndex   int
	Year          int
	TimeScale     float64
	Paused        bool
	IsDayTime     bool
	TimeString    string
	DateString    string
	IsDayStart    bool
	IsNightStart  bool
	IsSeasonStart bool
}

// Clock advances the game calendar from elapsed real time.
//
// One real second advances timeScale game minutes. Boundary events
// (hour, day, season) are published from Update only; Advance and
// SkipToHour mutate silently.
type Clock struct {
	cal           Calendar
	timeScale     float64
	paused        bool
	daysPerSeason int

	publisher events.Publisher
	logger    shared.Logger
}

// NewClock creates a clock at the default start time.
// A non-positive daysPerSeason falls back to 30.
func NewClock(daysPerSeason int, publisher events.Publisher, logger shared.Logger) *Clock {
	if daysPerSeason <= 0 {
		daysPerSeason = DefaultDaysPerSeason
	}
	c := &Clock{
		timeScale:     DefaultTimeScale,
		daysPerSeason: daysPerSeason,
		publisher:     events.PublisherOrDiscard(publisher),
		logger:        shared.LoggerOrNoOp(logger),
	}
	c.SetInitialTime(DayStartHour, 1, Spring, 1)
	return c
}

// SetInitialTime resets the calendar to the given values with minute 0
func (c *Clock) SetInitialTime(hour, day int, season Season, year int) {
	c.cal = Calendar{
		Minute: 0,
		Hour:   hour,
		Day:    day,
		Season: season,
		Year:   year,
	}
}

// Advance adds minutes to the calendar and propagates carries.
// Negative and non-finite values are ignored.
func (c *Clock) Advance(minutes float64) {
	if minutes < 0 || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return
	}
	c.cal.Minute += minutes
	c.cal.normalize(c.daysPerSeason)
}

// Update advances the calendar by delta real time scaled by the time scale,
// publishes any boundary events crossed, and returns the game minutes elapsed.
// A paused clock returns 0.
func (c *Clock) Update(delta time.Duration) float64 {
	if c.paused || delta <= 0 {
		return 0
	}

	before := c.cal
	minutes := delta.Seconds() * c.timeScale
	c.Advance(minutes)
	c.publishBoundaries(before)

	return minutes
}

func (c *Clock) publishBoundaries(before Calendar) {
	if c.cal.Hour != before.Hour {
		c.publisher.Publish(events.EventTypeHourChanged, events.HourChangedData{
			Hour:      c.cal.Hour,
			IsDayTime: c.cal.IsDayTime(),
		})
	}
	if c.cal.Day != before.Day {
		c.publisher.Publish(events.EventTypeDayChanged, events.DayChangedData{
			Day:    c.cal.Day,
			Season: c.cal.Season.String(),
			Year:   c.cal.Year,
		})
	}
	if c.cal.Season != before.Season {
		c.publisher.Publish(events.EventTypeSeasonChanged, events.SeasonChangedData{
			Season: c.cal.Season.String(),
			Year:   c.cal.Year,
		})
	}
}

// SetTimeScale changes the game-minutes-per-real-second factor.
// Non-positive scales are ignored.
func (c *Clock) SetTimeScale(scale float64) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return
	}
	c.timeScale = scale
	c.logger.Log(shared.LevelDebug, "Time scale changed", map[string]interface{}{
		"time_scale": scale,
	})
}

// TimeScale returns the current time scale
func (c *Clock) TimeScale() float64 {
	return c.timeScale
}

// DaysPerSeason returns the configured season length
func (c *Clock) DaysPerSeason() int {
	return c.daysPerSeason
}

func (c *Clock) Pause() {
	c.paused = true
}

func (c *Clock) Resume() {
	c.paused = false
}

func (c *Clock) IsPaused() bool {
	return c.paused
}

// SkipToHour jumps to the start of targetHour. A target earlier than the
// current hour lands on the next day.
func (c *Clock) SkipToHour(targetHour int) error {
	if targetHour < 0 || targetHour >= HoursPerDay {
		return shared.NewValidationError("hour", fmt.Sprintf("must be between 0 and 23, got %d", targetHour))
	}

	if targetHour < c.cal.Hour {
		c.cal.Day++
	}
	c.cal.Hour = targetHour
	c.cal.Minute = 0
	c.cal.normalize(c.daysPerSeason)

	c.logger.Log(shared.LevelDebug, "Skipped to hour", map[string]interface{}{
		"time": c.cal.TimeString(),
		"date": c.cal.DateString(),
	})
	return nil
}

// Calendar returns a copy of the current calendar
func (c *Clock) Calendar() Calendar {
	return c.cal
}

func (c *Clock) IsDayTime() bool {
	return c.cal.IsDayTime()
}

func (c *Clock) TimeString() string {
	return c.cal.TimeString()
}

func (c *Clock) DateString() string {
	return c.cal.DateString()
}

// Info returns the composite time view. The start-of-period flags use a
// minute < 1 window, so a tick that jumps past the first minute of an hour
// does not report them.
func (c *Clock) Info() TimeInfo {
	cal := c.cal
	return TimeInfo{
		Minute:        cal.Minute,
		Hour:          cal.Hour,
		Day:           cal.Day,
		Season:        cal.Season.String(),
		SeasonIndex:   int(cal.Season),
		Year:          cal.Year,
		TimeScale:     c.timeScale,
		Paused:        c.paused,
		IsDayTime:     cal.IsDayTime(),
		TimeString:    cal.TimeString(),
		DateString:    cal.DateString(),
		IsDayStart:    cal.Hour == DayStartHour && cal.Minute < 1,
		IsNightStart:  cal.Hour == NightStartHour && cal.Minute < 1,
		IsSeasonStart: cal.Day == 1 && cal.Hour == DayStartHour && cal.Minute < 1,
	}
}

// State exports the calendar and time scale
func (c *Clock) State() State {
	return State{
		Minute:    c.cal.Minute,
		Hour:      c.cal.Hour,
		Day:       c.cal.Day,
		Season:    int(c.cal.Season),
		Year:      c.cal.Year,
		TimeScale: c.timeScale,
	}
}

// LoadState replaces the calendar. Out-of-range values are replaced with
// defaults and overflowing values are carried into range.
func (c *Clock) LoadState(state State) {
	def := DefaultState()
	if state.Minute < 0 || math.IsNaN(state.Minute) || math.IsInf(state.Minute, 0) {
		state.Minute = def.Minute
	}
	if state.Hour < 0 {
		state.Hour = def.Hour
	}
	if state.Day < 1 {
		state.Day = def.Day
	}
	if state.Season < 0 {
		state.Season = def.Season
	}
	if state.Year < 1 {
		state.Year = def.Year
	}
	if !(state.TimeScale > 0) || math.IsInf(state.TimeScale, 0) {
		state.TimeScale = def.TimeScale
	}

	c.cal = Calendar{
		Minute: state.Minute,
		Hour:   state.Hour,
		Day:    state.Day,
		Season: Season(state.Season),
		Year:   state.Year,
	}
	c.cal.normalize(c.daysPerSeason)
	c.timeScale = state.TimeScale

	c.logger.Log(shared.LevelInfo, "Loaded time", map[string]interface{}{
		"time": c.cal.TimeString(),
		"date": c.cal.DateString(),
	})
}
