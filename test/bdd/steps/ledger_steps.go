package steps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

var ledgerFailures = map[string]error{
	"insufficient resource": resource.ErrInsufficientResource,
	"unknown resource":      resource.ErrUnknownResource,
	"invalid amount":        resource.ErrInvalidAmount,
	"not tradable":          resource.ErrNotTradable,
}

type ledgerContext struct {
	ledger      *resource.Ledger
	limitEvents *events.Recorder
	limitsSeen  map[string]bool
	err         error
}

func (lc *ledgerContext) reset() {
	lc.ledger = nil
	lc.limitEvents = nil
	lc.limitsSeen = make(map[string]bool)
	lc.err = nil
}

func (lc *ledgerContext) key(path string) (resource.Key, error) {
	if lc.ledger == nil {
		return resource.Key{}, fmt.Errorf("no ledger available")
	}
	return resource.ParseKey(path)
}

// Given steps

func (lc *ledgerContext) theDefaultInnLedger() error {
	bus := events.NewBus(shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
	lc.limitEvents = events.NewRecorder(events.EventTypeResourceLimitReached)
	bus.Subscribe(lc.limitEvents)

	ledger, err := resource.NewDefaultLedger(bus, nil)
	if err != nil {
		return fmt.Errorf("failed to build default ledger: %w", err)
	}
	lc.ledger = ledger
	return nil
}

func (lc *ledgerContext) theLimitOfIs(path string, limit float64) error {
	key, err := lc.key(path)
	if err != nil {
		return err
	}
	return lc.ledger.SetResourceLimit(key, limit)
}

// When steps

func (lc *ledgerContext) iAddToTheLedger(amount float64, path string) error {
	key, err := lc.key(path)
	if err != nil {
		return err
	}
	_, lc.err = lc.ledger.AddResource(key, amount)
	return nil
}

func (lc *ledgerContext) iRemoveFromTheLedger(amount float64, path string) error {
	key, err := lc.key(path)
	if err != nil {
		return err
	}
	lc.err = lc.ledger.RemoveResource(key, amount)
	return nil
}

func (lc *ledgerContext) iBuyAtTheMarket(quantity float64, path string) error {
	key, err := lc.key(path)
	if err != nil {
		return err
	}
	lc.err = lc.ledger.BuyResource(key, quantity)
	return nil
}

func (lc *ledgerContext) iSellAtTheMarket(quantity float64, path string) error {
	key, err := lc.key(path)
	if err != nil {
		return err
	}
	lc.err = lc.ledger.SellResource(key, quantity)
	return nil
}

func (lc *ledgerContext) gameDaysPassInTheLedger(days float64) error {
	if lc.ledger == nil {
		return fmt.Errorf("no ledger available")
	}
	lc.ledger.ProcessGeneration(days)
	lc.ledger.ProcessConsumption(days)
	return nil
}

// Then steps

func (lc *ledgerContext) theLedgerShouldHold(expected float64, path string) error {
	key, err := lc.key(path)
	if err != nil {
		return err
	}
	if got := lc.ledger.Amount(key); !approxEqual(got, expected) {
		return fmt.Errorf("expected %g %s, got %g", expected, key, got)
	}
	return nil
}

func (lc *ledgerContext) theLedgerShouldHoldTable(table *godog.Table) error {
	rows, err := dataRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		amount, err := parseFloatCell(table, row, "amount")
		if err != nil {
			return err
		}
		if err := lc.theLedgerShouldHold(amount, getCellValue(table, row, "resource")); err != nil {
			return err
		}
	}
	return nil
}

func (lc *ledgerContext) aLimitNotificationShouldHaveBeenRaisedFor(path string) error {
	for _, ev := range lc.limitEvents.Drain() {
		data := ev.Data.(events.ResourceLimitReachedData)
		lc.limitsSeen[data.Category+"."+data.Type] = true
	}
	if !lc.limitsSeen[path] {
		return fmt.Errorf("expected a limit notification for %s", path)
	}
	return nil
}

func (lc *ledgerContext) theLedgerOperationShouldFailWith(kind string) error {
	sentinel, ok := ledgerFailures[kind]
	if !ok {
		return fmt.Errorf("unknown failure kind %q", kind)
	}
	if lc.err == nil {
		return fmt.Errorf("expected the operation to fail with %s, but it succeeded", kind)
	}
	if !errors.Is(lc.err, sentinel) {
		return fmt.Errorf("expected %s, got %v", kind, lc.err)
	}
	return nil
}

func InitializeLedgerScenario(ctx *godog.ScenarioContext) {
	lc := &ledgerContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		lc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the default inn ledger$`, lc.theDefaultInnLedger)
	ctx.Step(`^the limit of "([^"]*)" is ([0-9.]+)$`, lc.theLimitOfIs)

	// When steps
	ctx.Step(`^I add (-?[0-9.]+) "([^"]*)" to the ledger$`, lc.iAddToTheLedger)
	ctx.Step(`^I remove (-?[0-9.]+) "([^"]*)" from the ledger$`, lc.iRemoveFromTheLedger)
	ctx.Step(`^I buy ([0-9.]+) "([^"]*)" at the market$`, lc.iBuyAtTheMarket)
	ctx.Step(`^I sell ([0-9.]+) "([^"]*)" at the market$`, lc.iSellAtTheMarket)
	ctx.Step(`^([0-9.]+) game days? passe?s? in the ledger$`, lc.gameDaysPassInTheLedger)

	// Then steps
	ctx.Step(`^the ledger should hold ([0-9.]+) "([^"]*)"$`, lc.theLedgerShouldHold)
	ctx.Step(`^the ledger should hold:$`, lc.theLedgerShouldHoldTable)
	ctx.Step(`^a limit notification should have been raised for "([^"]*)"$`, lc.aLimitNotificationShouldHaveBeenRaisedFor)
	ctx.Step(`^the ledger operation should fail with "([^"]*)"$`, lc.theLedgerOperationShouldFailWith)
}
