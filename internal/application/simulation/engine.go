package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/crafting"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/gametime"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/interaction"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/player"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// DefaultSlot is the save slot used when none is configured
const DefaultSlot = "cozy_hearth_save"

// Options configures a new engine
type Options struct {
	Slot          string
	DaysPerSeason int
	StartHour     int
	StartDay      int
	StartSeason   gametime.Season
	StartYear     int
	TimeScale     float64
	Interaction   interaction.Config
	DialogueSeed  uint64
	PlayerName    string
}

// DefaultOptions returns the options of a standard new game
func DefaultOptions() Options {
	return Options{
		Slot:          DefaultSlot,
		DaysPerSeason: gametime.DefaultDaysPerSeason,
		StartHour:     gametime.DayStartHour,
		StartDay:      1,
		StartSeason:   gametime.Spring,
		StartYear:     1,
		TimeScale:     gametime.DefaultTimeScale,
		DialogueSeed:  1,
		PlayerName:    player.DefaultName,
	}
}

func (o *Options) applyDefaults() {
	def := DefaultOptions()
	if o.Slot == "" {
		o.Slot = def.Slot
	}
	if o.DaysPerSeason <= 0 {
		o.DaysPerSeason = def.DaysPerSeason
	}
	if o.StartDay <= 0 {
		o.StartDay = def.StartDay
	}
	if o.StartYear <= 0 {
		o.StartYear = def.StartYear
	}
	if o.TimeScale <= 0 {
		o.TimeScale = def.TimeScale
	}
	if o.PlayerName == "" {
		o.PlayerName = def.PlayerName
	}
}

// DefaultObjects are the interactable objects of every inn
var DefaultObjects = map[string][]string{
	"hearth":    {"examine", "tend"},
	"workbench": {"examine", "craft"},
	"garden":    {"examine", "water", "harvest"},
}

// DefaultNPCs are the guest types that can be spoken with
var DefaultNPCs = map[string][]string{
	"traveler": {interaction.DialogInteraction, "serve"},
	"merchant": {interaction.DialogInteraction, "trade"},
}

// TickResult summarizes one engine tick
type TickResult struct {
	GameMinutes float64
	Completed   int
}

// Engine is the composition root of the simulation. It owns the clock,
// ledger, scheduler and interaction queue and serializes every tick and
// operation behind one lock.
type Engine struct {
	mu sync.Mutex

	opts   Options
	store  SaveStore
	clock  shared.Clock
	logger shared.Logger
	bus    *events.Bus

	time         *gametime.Clock
	ledger       *resource.Ledger
	scheduler    *crafting.Scheduler
	interactions *interaction.Queue

	player *player.Player
	inn    json.RawMessage
	guests json.RawMessage
}

// NewEngine creates an engine holding a new game. A nil store disables
// saving; a nil clock defaults to the real clock.
func NewEngine(opts Options, store SaveStore, clock shared.Clock, logger shared.Logger) (*Engine, error) {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	opts.applyDefaults()

	e := &Engine{
		opts:   opts,
		store:  store,
		clock:  clock,
		logger: shared.LoggerOrNoOp(logger),
		bus:    events.NewBus(clock),
	}
	if err := e.newGame(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) newGame() error {
	ledger, err := resource.NewDefaultLedger(e.bus, e.logger)
	if err != nil {
		return fmt.Errorf("failed to build ledger: %w", err)
	}
	catalog, err := crafting.NewDefaultCatalog()
	if err != nil {
		return fmt.Errorf("failed to build recipe catalog: %w", err)
	}

	clock := gametime.NewClock(e.opts.DaysPerSeason, e.bus, e.logger)
	clock.SetInitialTime(e.opts.StartHour, e.opts.StartDay, e.opts.StartSeason, e.opts.StartYear)
	clock.SetTimeScale(e.opts.TimeScale)

	queue := interaction.NewQueue(e.opts.Interaction, interaction.NewDefaultDialogueBook(e.opts.DialogueSeed), e.clock, e.bus, e.logger)
	for id, kinds := range DefaultObjects {
		if err := queue.RegisterObject(id, kinds...); err != nil {
			return err
		}
	}
	for id, kinds := range DefaultNPCs {
		if err := queue.RegisterNPC(id, kinds...); err != nil {
			return err
		}
	}

	e.time = clock
	e.ledger = ledger
	e.scheduler = crafting.NewScheduler(catalog, ledger, e.clock, e.bus, e.logger)
	e.interactions = queue
	e.player = player.NewPlayer(e.opts.PlayerName)
	e.inn = cloneRaw(DefaultInn)
	e.guests = cloneRaw(DefaultGuests)

	e.logger.Log(shared.LevelInfo, "New game created", map[string]interface{}{
		"time": clock.TimeString(),
		"date": clock.DateString(),
	})
	return nil
}

// Slot returns the save slot this engine reads and writes
func (e *Engine) Slot() string {
	return e.opts.Slot
}

// Subscribe registers a listener on the engine's event bus. Listeners run
// while the engine lock is held and must not call back into the engine.
func (e *Engine) Subscribe(listener events.Listener) (unsubscribe func()) {
	return e.bus.Subscribe(listener)
}

// Tick advances every subsystem by delta of real time: clock first, then
// ledger rates with the elapsed game days, then crafting and interactions.
func (e *Engine) Tick(delta time.Duration) TickResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	minutes := e.time.Update(delta)
	if minutes > 0 {
		days := minutes / gametime.MinutesPerDay
		e.ledger.ProcessGeneration(days)
		e.ledger.ProcessConsumption(days)
	}
	completed := e.scheduler.Update(delta)
	e.interactions.Update(delta)

	return TickResult{GameMinutes: minutes, Completed: completed}
}

// NewGame discards the current state and starts over
func (e *Engine) NewGame() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.newGame()
}

// StartCrafting starts a recipe using the player's skills
func (e *Engine) StartCrafting(recipeID string, quantity int) (crafting.ProcessInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scheduler.StartCrafting(recipeID, quantity, e.player.CraftingSkills())
}

// BuyResource buys quantity units of key with gold
func (e *Engine) BuyResource(key resource.Key, quantity float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.BuyResource(key, quantity)
}

// SellResource sells quantity units of key for gold
func (e *Engine) SellResource(key resource.Key, quantity float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.SellResource(key, quantity)
}

// AddResource credits the ledger directly, outside the market
func (e *Engine) AddResource(key resource.Key, amount float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, err := e.ledger.AddResource(key, amount)
	return err
}

// SkipToHour jumps the clock forward to the given hour
func (e *Engine) SkipToHour(hour int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.time.SkipToHour(hour)
}

// SetTimeScale changes the game minutes per real second
func (e *Engine) SetTimeScale(scale float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !(scale > 0) {
		return shared.NewValidationError("timeScale", "must be greater than zero")
	}
	e.time.SetTimeScale(scale)
	return nil
}

// SetPaused pauses or resumes the clock. Crafting keeps counting down.
func (e *Engine) SetPaused(paused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if paused {
		e.time.Pause()
	} else {
		e.time.Resume()
	}
}

// QueueInteraction appends an interaction request
func (e *Engine) QueueInteraction(req interaction.Request) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interactions.Enqueue(req)
}

// TimeInfo returns the clock's composite view
func (e *Engine) TimeInfo() gametime.TimeInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.time.Info()
}

// Resources returns every ledger entry, optionally restricted to categories
func (e *Engine) Resources(categories ...resource.Category) []resource.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(categories) == 0 {
		return e.ledger.Entries()
	}
	var out []resource.Entry
	for _, c := range categories {
		out = append(out, e.ledger.CategoryEntries(c)...)
	}
	return out
}

// Amount returns the held amount of one resource
func (e *Engine) Amount(key resource.Key) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Amount(key)
}

// MarketPrices returns buy and sell prices for a resource
func (e *Engine) MarketPrices(key resource.Key) (buy, sell float64, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	buy, ok = e.ledger.MarketPrice(key)
	if !ok {
		return 0, 0, false
	}
	sell, _ = e.ledger.SellPrice(key)
	return buy, sell, true
}

// CraftableRecipes lists the recipes the player has the skill and stock for
func (e *Engine) CraftableRecipes() []crafting.Recipe {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scheduler.CraftableRecipes(e.player.CraftingSkills())
}

// ActiveProcesses lists in-flight crafting processes
func (e *Engine) ActiveProcesses() []crafting.ProcessInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scheduler.ActiveProcesses()
}

// CurrentInteraction returns the active interaction, if any
func (e *Engine) CurrentInteraction() (interaction.Request, int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	req, ok := e.interactions.Current()
	return req, e.interactions.Pending(), ok
}

// HasInteractedBefore reports whether a target has any completed interaction
func (e *Engine) HasInteractedBefore(targetID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interactions.HasInteractedBefore(targetID)
}

// Player returns a copy of the innkeeper
func (e *Engine) Player() player.Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := *e.player
	p.Skills = e.player.CraftingSkills()
	p.Inventory = append([]string(nil), e.player.Inventory...)
	return p
}

// SetSkill changes one of the player's skill levels
func (e *Engine) SetSkill(name string, level int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.player.SetSkill(name, level)
}

// Snapshot captures the persistable state
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Engine) snapshot() Snapshot {
	p := *e.player
	p.Skills = e.player.CraftingSkills()
	p.Inventory = append([]string(nil), e.player.Inventory...)
	return Snapshot{
		Player:        &p,
		Inn:           cloneRaw(e.inn),
		Guests:        cloneRaw(e.guests),
		Time:          newTimeSnapshot(e.time.State()),
		Resources:     e.ledger.State(),
		Interactions:  e.interactions.State(),
		SaveTimestamp: Timestamp(e.clock.Now().UnixMilli()),
	}
}

// Restore replaces clock, ledger, player and history with the snapshot.
// In-flight crafting and queued interactions are dropped.
func (e *Engine) Restore(snap Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.restore(snap)
}

func (e *Engine) restore(snap Snapshot) {
	if snap.Player != nil {
		p := *snap.Player
		p.Normalize()
		e.player = &p
	} else {
		e.player = player.NewPlayer(e.opts.PlayerName)
	}
	e.inn = cloneRaw(snap.Inn)
	if e.inn == nil {
		e.inn = cloneRaw(DefaultInn)
	}
	e.guests = cloneRaw(snap.Guests)
	if e.guests == nil {
		e.guests = cloneRaw(DefaultGuests)
	}

	e.time.LoadState(snap.Time.State())
	if snap.Resources == nil {
		resource.ApplyStartingStock(e.ledger)
	} else {
		e.ledger.LoadState(snap.Resources)
	}
	e.scheduler.Reset()
	e.interactions.Reset()
	e.interactions.LoadState(snap.Interactions)
}

// Save writes the snapshot to the store. On failure the in-memory state is
// kept and a *PersistenceError is returned.
func (e *Engine) Save(ctx context.Context) (time.Time, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.snapshot()
	savedAt := snap.SavedAt()
	if e.store == nil {
		return savedAt, e.persistenceFailure(opWrite, errors.New("no save store configured"))
	}

	data, err := snap.Encode()
	if err != nil {
		return savedAt, e.persistenceFailure(opWrite, err)
	}
	if err := e.store.Write(ctx, e.opts.Slot, data, savedAt); err != nil {
		return savedAt, e.persistenceFailure(opWrite, err)
	}

	e.logger.Log(shared.LevelInfo, "Game saved", map[string]interface{}{
		"slot":     e.opts.Slot,
		"saved_at": savedAt.Format(time.RFC3339),
		"bytes":    len(data),
	})
	return savedAt, nil
}

// Load restores the slot's save. It reports false when no save is present;
// unreadable or corrupt saves are treated as absent and also return a
// *PersistenceError so callers can surface the cause.
func (e *Engine) Load(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store == nil {
		return false, nil
	}
	data, err := e.store.Read(ctx, e.opts.Slot)
	if errors.Is(err, ErrSaveNotFound) {
		return false, nil
	}
	if err != nil {
		return false, e.persistenceFailure(opRead, err)
	}

	snap, err := DecodeSnapshot(data)
	if err != nil {
		return false, e.persistenceFailure(opRead, err)
	}
	e.restore(snap)

	e.logger.Log(shared.LevelInfo, "Game loaded", map[string]interface{}{
		"slot":     e.opts.Slot,
		"saved_at": snap.SavedAt().Format(time.RFC3339),
	})
	return true, nil
}

// Export returns the current state as a save blob
func (e *Engine) Export() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot().Encode()
}

// Import validates a save blob, restores it and writes it to the slot
func (e *Engine) Import(ctx context.Context, data []byte) error {
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	e.Restore(snap)
	_, err = e.Save(ctx)
	return err
}

func (e *Engine) persistenceFailure(op string, err error) error {
	perr := &PersistenceError{Op: op, Slot: e.opts.Slot, Err: err}
	e.logger.Log(shared.LevelError, "Persistence failure", map[string]interface{}{
		"op":    op,
		"slot":  e.opts.Slot,
		"error": err.Error(),
	})
	return perr
}
