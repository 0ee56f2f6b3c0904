package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/interaction"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

var interactionFailures = map[string]error{
	interaction.ErrUnknownTarget.Error():          interaction.ErrUnknownTarget,
	interaction.ErrUnsupportedInteraction.Error(): interaction.ErrUnsupportedInteraction,
}

type interactionContext struct {
	queue       *interaction.Queue
	clock       *shared.MockClock
	recorder    *events.Recorder
	lastStarted *events.InteractionData
	speakers    map[string]bool
	err         error
}

func (ic *interactionContext) reset() {
	ic.queue = nil
	ic.clock = nil
	ic.recorder = nil
	ic.lastStarted = nil
	ic.speakers = make(map[string]bool)
	ic.err = nil
}

func splitInteractions(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Given steps

func (ic *interactionContext) anInteractionQueueWithADwellOfSeconds(seconds int) error {
	ic.clock = shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	bus := events.NewBus(ic.clock)
	ic.recorder = events.NewRecorder(events.EventTypeInteractionStarted, events.EventTypeDialogueSpoken)
	bus.Subscribe(ic.recorder)

	cfg := interaction.Config{Dwell: time.Duration(seconds) * time.Second}
	ic.queue = interaction.NewQueue(cfg, interaction.NewDefaultDialogueBook(1), ic.clock, bus, nil)
	return nil
}

func (ic *interactionContext) theObjectSupports(id, list string) error {
	if ic.queue == nil {
		return fmt.Errorf("no interaction queue available")
	}
	return ic.queue.RegisterObject(id, splitInteractions(list)...)
}

func (ic *interactionContext) theGuestSupports(id, list string) error {
	if ic.queue == nil {
		return fmt.Errorf("no interaction queue available")
	}
	return ic.queue.RegisterNPC(id, splitInteractions(list)...)
}

// When steps

func (ic *interactionContext) iQueueOnTheObject(interactionType, id string) error {
	if ic.queue == nil {
		return fmt.Errorf("no interaction queue available")
	}
	ic.err = ic.queue.InteractWithObject(id, interactionType)
	return nil
}

func (ic *interactionContext) iQueueWithTheGuest(interactionType, id string) error {
	if ic.queue == nil {
		return fmt.Errorf("no interaction queue available")
	}
	ic.err = ic.queue.InteractWithNPC(id, interactionType, nil)
	return nil
}

func (ic *interactionContext) theInteractionQueueAdvancesMilliseconds(ms int) error {
	if ic.queue == nil {
		return fmt.Errorf("no interaction queue available")
	}
	delta := time.Duration(ms) * time.Millisecond
	ic.clock.Advance(delta)
	ic.queue.Update(delta)

	for _, ev := range ic.recorder.Drain() {
		switch data := ev.Data.(type) {
		case events.InteractionData:
			ic.lastStarted = &data
		case events.DialogueData:
			ic.speakers[data.NPCID] = true
		}
	}
	return nil
}

// Then steps

func (ic *interactionContext) shouldBeTheActiveInteraction(id string) error {
	current, ok := ic.queue.Current()
	if !ok {
		return fmt.Errorf("expected %s to be active, but nothing is", id)
	}
	if current.TargetID != id {
		return fmt.Errorf("expected %s to be active, got %s", id, current.TargetID)
	}
	return nil
}

func (ic *interactionContext) interactionsShouldBePending(count int) error {
	if got := ic.queue.Pending(); got != count {
		return fmt.Errorf("expected %d pending interactions, got %d", count, got)
	}
	return nil
}

func (ic *interactionContext) shouldHaveBeenInteractedWithBefore(id string) error {
	if !ic.queue.HasInteractedBefore(id) {
		return fmt.Errorf("expected %s to have interaction history", id)
	}
	return nil
}

func (ic *interactionContext) theInteractionShouldBeRejectedAs(message string) error {
	sentinel, ok := interactionFailures[message]
	if !ok {
		return fmt.Errorf("unknown rejection %q", message)
	}
	if ic.err == nil {
		return fmt.Errorf("expected the interaction to be rejected as %q", message)
	}
	if !errors.Is(ic.err, sentinel) {
		return fmt.Errorf("expected %q, got %v", message, ic.err)
	}
	return nil
}

func (ic *interactionContext) aDialogueLineShouldHaveBeenSpokenBy(npcID string) error {
	if !ic.speakers[npcID] {
		return fmt.Errorf("expected %s to speak a dialogue line", npcID)
	}
	return nil
}

func (ic *interactionContext) theActiveInteractionShouldBeAReturningVisit() error {
	if ic.lastStarted == nil {
		return fmt.Errorf("no interaction has started")
	}
	if !ic.lastStarted.Returning {
		return fmt.Errorf("expected %s to be a returning visit", ic.lastStarted.TargetID)
	}
	return nil
}

func InitializeInteractionScenario(ctx *godog.ScenarioContext) {
	ic := &interactionContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		ic.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an interaction queue with a dwell of (\d+) seconds$`, ic.anInteractionQueueWithADwellOfSeconds)
	ctx.Step(`^the object "([^"]*)" supports "([^"]*)"$`, ic.theObjectSupports)
	ctx.Step(`^the guest "([^"]*)" supports "([^"]*)"$`, ic.theGuestSupports)

	// When steps
	ctx.Step(`^I queue "([^"]*)" on the object "([^"]*)"$`, ic.iQueueOnTheObject)
	ctx.Step(`^I queue "([^"]*)" with the guest "([^"]*)"$`, ic.iQueueWithTheGuest)
	ctx.Step(`^the interaction queue advances (\d+) milliseconds$`, ic.theInteractionQueueAdvancesMilliseconds)

	// Then steps
	ctx.Step(`^"([^"]*)" should be the active interaction$`, ic.shouldBeTheActiveInteraction)
	ctx.Step(`^(\d+) interactions? should be pending$`, ic.interactionsShouldBePending)
	ctx.Step(`^"([^"]*)" should have been interacted with before$`, ic.shouldHaveBeenInteractedWithBefore)
	ctx.Step(`^the interaction should be rejected as "([^"]*)"$`, ic.theInteractionShouldBeRejectedAs)
	ctx.Step(`^a dialogue line should have been spoken by "([^"]*)"$`, ic.aDialogueLineShouldHaveBeenSpokenBy)
	ctx.Step(`^the active interaction should be a returning visit$`, ic.theActiveInteractionShouldBeAReturningVisit)
}
