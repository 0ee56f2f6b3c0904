package events

import "time"

// EventType describes the kind of notification raised by the simulation.
type EventType string

const (
	EventTypeResourceChanged      EventType = "ResourceChanged"
	EventTypeResourceLimitReached EventType = "ResourceLimitReached"
	EventTypeCraftingStarted      EventType = "CraftingStarted"
	EventTypeCraftingCompleted    EventType = "CraftingCompleted"
	EventTypeCraftingFailed       EventType = "CraftingFailed"
	EventTypeHourChanged          EventType = "HourChanged"
	EventTypeDayChanged           EventType = "DayChanged"
	EventTypeSeasonChanged        EventType = "SeasonChanged"
	EventTypeInteractionStarted   EventType = "InteractionStarted"
	EventTypeInteractionEnded     EventType = "InteractionEnded"
	EventTypeDialogueSpoken       EventType = "DialogueSpoken"
)

// ResourceChangedData is raised after every successful ledger mutation.
type ResourceChangedData struct {
	Category  string
	Type      string
	OldAmount float64
	NewAmount float64
	Change    float64
}

// ResourceLimitReachedData is raised when an addition was clamped to capacity.
type ResourceLimitReachedData struct {
	Category string
	Type     string
	Limit    float64
}

// CraftingStartedData is raised once inputs are reserved.
type CraftingStartedData struct {
	ProcessID            string
	Recipe               string
	RecipeName           string
	Quantity             int
	TimeRemainingSeconds float64
}

// CraftingCompletedData is raised after outputs are credited.
type CraftingCompletedData struct {
	ProcessID  string
	Recipe     string
	RecipeName string
	Quantity   int
}

// CraftingFailedData is raised when a start request is rejected.
type CraftingFailedData struct {
	RecipeID string
	Reason   string
}

// HourChangedData is raised when the clock crosses into a new hour.
type HourChangedData struct {
	Hour      int
	IsDayTime bool
}

// DayChangedData is raised when the clock crosses into a new day.
type DayChangedData struct {
	Day    int
	Season string
	Year   int
}

// SeasonChangedData is raised when the clock crosses into a new season.
type SeasonChangedData struct {
	Season string
	Year   int
}

// InteractionData describes an interaction moving through the queue.
type InteractionData struct {
	Kind            string
	TargetID        string
	InteractionType string
	Returning       bool
}

// DialogueData carries the line selected for an NPC conversation.
type DialogueData struct {
	NPCID string
	Topic string
	Line  string
}

// Event represents a notification produced during a tick or command.
type Event struct {
	ID   uint64
	At   time.Time
	Type EventType
	Data any
}

// New constructs a new Event with the provided fields.
func New(id uint64, at time.Time, eventType EventType, data any) Event {
	return Event{
		ID:   id,
		At:   at,
		Type: eventType,
		Data: data,
	}
}
