package steps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/gametime"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// clockTickStep mirrors the host's frame interval so boundary events fire once per hour crossed
const clockTickStep = 100 * time.Millisecond

type clockContext struct {
	clock    *gametime.Clock
	recorder *events.Recorder
	counts   map[events.EventType]int
	err      error
}

func (cc *clockContext) reset() {
	cc.clock = nil
	cc.recorder = nil
	cc.counts = make(map[events.EventType]int)
	cc.err = nil
}

// Given steps

func (cc *clockContext) aGameClockWithDaysPerSeason(days int) error {
	bus := events.NewBus(shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
	cc.recorder = events.NewRecorder()
	bus.Subscribe(cc.recorder)
	cc.clock = gametime.NewClock(days, bus, nil)
	return nil
}

func (cc *clockContext) theTimeScaleIs(scale float64) error {
	if cc.clock == nil {
		return fmt.Errorf("no game clock available")
	}
	cc.clock.SetTimeScale(scale)
	if cc.clock.TimeScale() != scale {
		return fmt.Errorf("time scale %g was not accepted", scale)
	}
	return nil
}

func (cc *clockContext) theGameClockIsAt(hour, day int, seasonName string, year int) error {
	if cc.clock == nil {
		return fmt.Errorf("no game clock available")
	}
	season, err := gametime.ParseSeason(seasonName)
	if err != nil {
		return err
	}
	cc.clock.SetInitialTime(hour, day, season, year)
	return nil
}

// When steps

func (cc *clockContext) theClockRunsForRealSeconds(seconds float64) error {
	if cc.clock == nil {
		return fmt.Errorf("no game clock available")
	}
	remaining := time.Duration(seconds * float64(time.Second))
	for remaining > 0 {
		step := min(clockTickStep, remaining)
		cc.clock.Update(step)
		remaining -= step
	}
	cc.collect()
	return nil
}

func (cc *clockContext) theClockIsPaused() error {
	if cc.clock == nil {
		return fmt.Errorf("no game clock available")
	}
	cc.clock.Pause()
	return nil
}

func (cc *clockContext) iSkipTheClockToHour(hour int) error {
	if cc.clock == nil {
		return fmt.Errorf("no game clock available")
	}
	cc.err = cc.clock.SkipToHour(hour)
	cc.collect()
	return nil
}

func (cc *clockContext) collect() {
	for _, ev := range cc.recorder.Drain() {
		cc.counts[ev.Type]++
	}
}

// Then steps

func (cc *clockContext) theClockShouldRead(expected string) error {
	if got := cc.clock.TimeString(); got != expected {
		return fmt.Errorf("expected clock to read %s, got %s", expected, got)
	}
	return nil
}

func (cc *clockContext) theDateShouldRead(expected string) error {
	if got := cc.clock.DateString(); got != expected {
		return fmt.Errorf("expected date %q, got %q", expected, got)
	}
	return nil
}

func (cc *clockContext) itShouldBeDaytime() error {
	if !cc.clock.IsDayTime() {
		return fmt.Errorf("expected daytime at %s", cc.clock.TimeString())
	}
	return nil
}

func (cc *clockContext) itShouldBeNighttime() error {
	if cc.clock.IsDayTime() {
		return fmt.Errorf("expected nighttime at %s", cc.clock.TimeString())
	}
	return nil
}

func (cc *clockContext) eventsShouldHaveBeenPublished(count int, eventType string) error {
	if got := cc.counts[events.EventType(eventType)]; got != count {
		return fmt.Errorf("expected %d %s events, got %d", count, eventType, got)
	}
	return nil
}

func (cc *clockContext) theSkipShouldBeRejected() error {
	if cc.err == nil {
		return fmt.Errorf("expected skip to be rejected")
	}
	var verr *shared.ValidationError
	if !errors.As(cc.err, &verr) {
		return fmt.Errorf("expected a validation error, got %v", cc.err)
	}
	return nil
}

func InitializeClockScenario(ctx *godog.ScenarioContext) {
	cc := &clockContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a game clock with (\d+) days per season$`, cc.aGameClockWithDaysPerSeason)
	ctx.Step(`^the time scale is ([0-9.]+)$`, cc.theTimeScaleIs)
	ctx.Step(`^the game clock is at hour (\d+) on day (\d+) of "([^"]*)" year (\d+)$`, cc.theGameClockIsAt)

	// When steps
	ctx.Step(`^the clock runs for ([0-9.]+) real seconds$`, cc.theClockRunsForRealSeconds)
	ctx.Step(`^the clock is paused$`, cc.theClockIsPaused)
	ctx.Step(`^I skip the clock to hour (\d+)$`, cc.iSkipTheClockToHour)

	// Then steps
	ctx.Step(`^the clock should read "([^"]*)"$`, cc.theClockShouldRead)
	ctx.Step(`^the date should read "([^"]*)"$`, cc.theDateShouldRead)
	ctx.Step(`^it should be daytime$`, cc.itShouldBeDaytime)
	ctx.Step(`^it should be nighttime$`, cc.itShouldBeNighttime)
	ctx.Step(`^(\d+) "([^"]*)" events? should have been published$`, cc.eventsShouldHaveBeenPublished)
	ctx.Step(`^the skip should be rejected$`, cc.theSkipShouldBeRejected)
}
