package resource

import (
	"fmt"
	"math"
	"slices"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// SellPriceMultiplier is the fraction of the buy price paid when selling
const SellPriceMultiplier = 0.5

// State is the persisted form of the ledger: amounts per category, keyed by type
type State map[Category]map[string]float64

// Entry is a read-only view of one ledger row
type Entry struct {
	Key    Key
	Amount float64
	Limit  float64
}

// Ledger is the single owner of resource quantities.
//
// Every entry satisfies 0 <= amount <= limit after each mutation. Limits and
// rates set on a scope key (a category, or a group such as garden.seeds)
// apply to every entry beneath it unless a more specific key overrides them.
// Decay rates are the exception: they stack from the category down.
//
// Ledger is not safe for concurrent use.
type Ledger struct {
	amounts map[Key]float64
	order   []Key

	limits          map[Key]float64
	generation      map[Key]float64
	consumption     map[Key]float64
	flatConsumption map[Key]float64
	prices          map[Key]float64

	currency  Key
	publisher events.Publisher
	logger    shared.Logger
}

// NewLedger creates an empty ledger with a currency.gold entry
func NewLedger(publisher events.Publisher, logger shared.Logger) *Ledger {
	l := &Ledger{
		amounts:         make(map[Key]float64),
		limits:          make(map[Key]float64),
		generation:      make(map[Key]float64),
		consumption:     make(map[Key]float64),
		flatConsumption: make(map[Key]float64),
		prices:          make(map[Key]float64),
		currency:        Gold,
		publisher:       events.PublisherOrDiscard(publisher),
		logger:          shared.LoggerOrNoOp(logger),
	}
	l.register(Gold, 0)
	return l
}

// AddResourceType registers a new entry with an initial amount
func (l *Ledger) AddResourceType(key Key, initial float64) error {
	if !key.Category.IsValid() {
		return l.fail("add resource type", &UnknownResourceError{Key: key})
	}
	if key.IsScope() {
		return l.fail("add resource type", shared.NewValidationError("type", "must not be empty"))
	}
	if _, exists := l.amounts[key]; exists {
		return l.fail("add resource type", fmt.Errorf("%w: %s", ErrResourceExists, key))
	}
	if initial < 0 || !isFinite(initial) {
		return l.fail("add resource type", &InvalidAmountError{Key: key, Amount: initial})
	}

	l.register(key, math.Min(initial, l.Limit(key)))
	return nil
}

func (l *Ledger) register(key Key, amount float64) {
	l.amounts[key] = amount
	l.order = append(l.order, key)
}

// Has reports whether key is a registered entry
func (l *Ledger) Has(key Key) bool {
	_, ok := l.amounts[key]
	return ok
}

// AddResource credits amount, clamped to the entry's limit. It reports
// whether the result sits exactly at the limit.
func (l *Ledger) AddResource(key Key, amount float64) (limitReached bool, err error) {
	current, ok := l.amounts[key]
	if !ok {
		return false, l.fail("add resource", &UnknownResourceError{Key: key})
	}
	if !(amount > 0) || !isFinite(amount) {
		return false, l.fail("add resource", &InvalidAmountError{Key: key, Amount: amount})
	}

	limit := l.Limit(key)
	updated := math.Min(current+amount, limit)
	l.set(key, current, updated)

	if updated == limit {
		l.logger.Log(shared.LevelDebug, "Resource at maximum capacity", map[string]interface{}{
			"resource": key.String(),
			"limit":    limit,
		})
		l.publisher.Publish(events.EventTypeResourceLimitReached, events.ResourceLimitReachedData{
			Category: string(key.Category),
			Type:     key.Type,
			Limit:    limit,
		})
		return true, nil
	}
	return false, nil
}

// RemoveResource debits amount. Balances never go negative.
func (l *Ledger) RemoveResource(key Key, amount float64) error {
	current, ok := l.amounts[key]
	if !ok {
		return l.fail("remove resource", &UnknownResourceError{Key: key})
	}
	if !(amount > 0) || !isFinite(amount) {
		return l.fail("remove resource", &InvalidAmountError{Key: key, Amount: amount})
	}
	if current < amount {
		return l.fail("remove resource", &InsufficientResourceError{Key: key, Required: amount, Available: current})
	}

	l.set(key, current, current-amount)
	return nil
}

func (l *Ledger) set(key Key, old, updated float64) {
	l.amounts[key] = updated
	l.publisher.Publish(events.EventTypeResourceChanged, events.ResourceChangedData{
		Category:  string(key.Category),
		Type:      key.Type,
		OldAmount: old,
		NewAmount: updated,
		Change:    updated - old,
	})
}

// Amount returns the current quantity, or 0 for an unknown key
func (l *Ledger) Amount(key Key) float64 {
	amount, ok := l.amounts[key]
	if !ok {
		l.logger.Log(shared.LevelError, "Unknown resource requested", map[string]interface{}{
			"resource": key.String(),
		})
		return 0
	}
	return amount
}

// Limit returns the effective capacity of key: the most specific limit set
// on the key or one of its scopes, or +Inf.
func (l *Ledger) Limit(key Key) float64 {
	if limit, ok := resolve(l.limits, key); ok {
		return limit
	}
	return math.Inf(1)
}

// resolve walks key → group → category and returns the first value set
func resolve(table map[Key]float64, key Key) (float64, bool) {
	for k, ok := key, true; ok; k, ok = k.Parent() {
		if v, found := table[k]; found {
			return v, true
		}
	}
	return 0, false
}

// chain returns the rates set on key and its scopes, broadest first
func chain(table map[Key]float64, key Key) []float64 {
	var rates []float64
	for k, ok := key, true; ok; k, ok = k.Parent() {
		if v, found := table[k]; found {
			rates = append(rates, v)
		}
	}
	slices.Reverse(rates)
	return rates
}

// HasEnoughResources reports whether every requirement is registered and covered
func (l *Ledger) HasEnoughResources(req Requirements) bool {
	return l.verify(req) == nil
}

// Shortfall describes one unmet requirement
type Shortfall struct {
	Key       Key
	Required  float64
	Available float64
}

// Shortfalls lists the requirements the ledger cannot cover, in key order
func (l *Ledger) Shortfalls(req Requirements) []Shortfall {
	var out []Shortfall
	for _, key := range req.Keys() {
		need := req[key]
		have, ok := l.amounts[key]
		if !ok || have < need {
			out = append(out, Shortfall{Key: key, Required: need, Available: have})
		}
	}
	return out
}

func (l *Ledger) verify(req Requirements) error {
	for _, key := range req.Keys() {
		need := req[key]
		if need < 0 || !isFinite(need) {
			return &InvalidAmountError{Key: key, Amount: need}
		}
		have, ok := l.amounts[key]
		if !ok {
			return &UnknownResourceError{Key: key}
		}
		if have < need {
			return &InsufficientResourceError{Key: key, Required: need, Available: have}
		}
	}
	return nil
}

// ConsumeResources debits every requirement or none of them. All entries are
// verified before the first debit; zero quantities are skipped.
func (l *Ledger) ConsumeResources(req Requirements) error {
	if err := l.verify(req); err != nil {
		return l.fail("consume resources", err)
	}

	for _, key := range req.Keys() {
		need := req[key]
		if need == 0 {
			continue
		}
		current := l.amounts[key]
		l.set(key, current, current-need)
	}
	return nil
}

// CreditResources adds every entry of out, clamped to limits
func (l *Ledger) CreditResources(out Requirements) error {
	for _, key := range out.Keys() {
		if !l.Has(key) {
			return l.fail("credit resources", &UnknownResourceError{Key: key})
		}
	}
	for _, key := range out.Keys() {
		if out[key] == 0 {
			continue
		}
		if _, err := l.AddResource(key, out[key]); err != nil {
			return err
		}
	}
	return nil
}

// MarketPrice returns the unit buy price for key
func (l *Ledger) MarketPrice(key Key) (float64, bool) {
	price, ok := l.prices[key]
	return price, ok
}

// SellPrice returns the unit price the market pays for key
func (l *Ledger) SellPrice(key Key) (float64, bool) {
	price, ok := l.prices[key]
	return price * SellPriceMultiplier, ok
}

// BuyResource pays gold for quantity units of key. If the credit fails the
// gold is refunded.
func (l *Ledger) BuyResource(key Key, quantity float64) error {
	price, ok := l.prices[key]
	if !ok {
		return l.fail("buy resource", &NotTradableError{Key: key})
	}
	if !(quantity > 0) || !isFinite(quantity) {
		return l.fail("buy resource", &InvalidAmountError{Key: key, Amount: quantity})
	}

	cost := price * quantity
	if cost > 0 {
		if err := l.RemoveResource(l.currency, cost); err != nil {
			return fmt.Errorf("failed to pay for %s: %w", key, err)
		}
	}

	if _, err := l.AddResource(key, quantity); err != nil {
		if cost > 0 {
			_, _ = l.AddResource(l.currency, cost)
		}
		return fmt.Errorf("failed to deliver %s: %w", key, err)
	}

	l.logger.Log(shared.LevelInfo, "Bought resource", map[string]interface{}{
		"resource": key.String(),
		"quantity": quantity,
		"cost":     cost,
	})
	return nil
}

// SellResource trades quantity units of key for gold at the sell price
func (l *Ledger) SellResource(key Key, quantity float64) error {
	price, ok := l.prices[key]
	if !ok {
		return l.fail("sell resource", &NotTradableError{Key: key})
	}
	if err := l.RemoveResource(key, quantity); err != nil {
		return fmt.Errorf("failed to sell %s: %w", key, err)
	}

	proceeds := price * SellPriceMultiplier * quantity
	if proceeds > 0 {
		if _, err := l.AddResource(l.currency, proceeds); err != nil {
			_, _ = l.AddResource(key, quantity)
			return fmt.Errorf("failed to credit sale of %s: %w", key, err)
		}
	}

	l.logger.Log(shared.LevelInfo, "Sold resource", map[string]interface{}{
		"resource": key.String(),
		"quantity": quantity,
		"proceeds": proceeds,
	})
	return nil
}

// ProcessGeneration credits rate × days to every entry with a generation rate
func (l *Ledger) ProcessGeneration(days float64) {
	if !(days > 0) || !isFinite(days) {
		return
	}
	for _, key := range l.order {
		rate, ok := resolve(l.generation, key)
		if !ok || rate <= 0 {
			continue
		}
		if l.amounts[key] >= l.Limit(key) {
			continue
		}
		_, _ = l.AddResource(key, rate*days)
	}
}

// ProcessConsumption applies decay (amount × rate × days) and then flat
// consumption (rate × days), never removing more than the current stock.
// Decay rates stack: the category rate runs first and each narrower rate
// then decays what is left.
func (l *Ledger) ProcessConsumption(days float64) {
	if !(days > 0) || !isFinite(days) {
		return
	}
	for _, key := range l.order {
		for _, rate := range chain(l.consumption, key) {
			if rate > 0 {
				l.drain(key, l.amounts[key]*rate*days)
			}
		}
	}
	for _, key := range l.order {
		if rate, ok := resolve(l.flatConsumption, key); ok && rate > 0 {
			l.drain(key, rate*days)
		}
	}
}

func (l *Ledger) drain(key Key, amount float64) {
	current := l.amounts[key]
	if amount <= 0 || current <= 0 {
		return
	}
	_ = l.RemoveResource(key, math.Min(amount, current))
}

// SetResourceLimit sets the capacity of an entry or scope and caps any
// stock now above its effective limit.
func (l *Ledger) SetResourceLimit(key Key, limit float64) error {
	if !key.Category.IsValid() {
		return l.fail("set resource limit", &UnknownResourceError{Key: key})
	}
	if limit < 0 || math.IsNaN(limit) {
		return l.fail("set resource limit", &InvalidAmountError{Key: key, Amount: limit})
	}

	l.limits[key] = limit
	for _, k := range l.order {
		if current, capped := l.amounts[k], l.Limit(k); current > capped {
			l.set(k, current, capped)
			l.logger.Log(shared.LevelDebug, "Capped resource to new limit", map[string]interface{}{
				"resource": k.String(),
				"limit":    capped,
			})
		}
	}
	return nil
}

// SetGenerationRate sets the per-day generation of an entry or scope.
// A rate of 0 on a specific key exempts it from a scope rate.
func (l *Ledger) SetGenerationRate(key Key, rate float64) error {
	return l.setRate(l.generation, "generation", key, rate)
}

// SetConsumptionRate sets the per-day decay fraction of an entry or scope
func (l *Ledger) SetConsumptionRate(key Key, rate float64) error {
	return l.setRate(l.consumption, "consumption", key, rate)
}

// SetFlatConsumptionRate sets a fixed per-day drain on an entry or scope
func (l *Ledger) SetFlatConsumptionRate(key Key, rate float64) error {
	return l.setRate(l.flatConsumption, "flat consumption", key, rate)
}

func (l *Ledger) setRate(table map[Key]float64, name string, key Key, rate float64) error {
	if !key.Category.IsValid() {
		return l.fail("set "+name+" rate", &UnknownResourceError{Key: key})
	}
	if rate < 0 || !isFinite(rate) {
		return l.fail("set "+name+" rate", &InvalidAmountError{Key: key, Amount: rate})
	}
	table[key] = rate
	return nil
}

// SetMarketPrice sets the unit buy price for key
func (l *Ledger) SetMarketPrice(key Key, price float64) error {
	if !key.Category.IsValid() || key.IsScope() {
		return l.fail("set market price", &UnknownResourceError{Key: key})
	}
	if price < 0 || !isFinite(price) {
		return l.fail("set market price", &InvalidAmountError{Key: key, Amount: price})
	}
	l.prices[key] = price
	return nil
}

// Entries returns every entry in registration order
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, Entry{Key: key, Amount: l.amounts[key], Limit: l.Limit(key)})
	}
	return out
}

// CategoryEntries returns the entries of one category in registration order
func (l *Ledger) CategoryEntries(category Category) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		if e.Key.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// State exports every amount
func (l *Ledger) State() State {
	state := make(State, len(Categories))
	for _, key := range l.order {
		if state[key.Category] == nil {
			state[key.Category] = make(map[string]float64)
		}
		state[key.Category][key.Type] = l.amounts[key]
	}
	return state
}

// LoadState replaces every amount. Registered entries missing from state
// become 0, unknown entries are skipped and values are clamped to limits.
// No change notifications are raised.
func (l *Ledger) LoadState(state State) {
	for _, key := range l.order {
		l.amounts[key] = 0
	}

	for category, types := range state {
		for typ, amount := range types {
			key := Key{Category: category, Type: typ}
			if _, ok := l.amounts[key]; !ok {
				l.logger.Log(shared.LevelWarn, "Skipping unknown resource in saved state", map[string]interface{}{
					"resource": key.String(),
				})
				continue
			}
			if amount < 0 || math.IsNaN(amount) {
				amount = 0
			}
			l.amounts[key] = math.Min(amount, l.Limit(key))
		}
	}
}

func (l *Ledger) fail(op string, err error) error {
	l.logger.Log(shared.LevelWarn, "Resource operation failed", map[string]interface{}{
		"operation": op,
		"error":     err.Error(),
	})
	return err
}

// DisplayAmount floors a quantity for presentation
func DisplayAmount(amount float64) int {
	return int(math.Floor(amount))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
