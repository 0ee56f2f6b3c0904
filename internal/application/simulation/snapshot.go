package simulation

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/gametime"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/interaction"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/player"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
)

// TimeSnapshot is the persisted clock. Fields are pointers so that saves
// written without them load with new-game defaults.
type TimeSnapshot struct {
	Minute    *float64 `json:"minute,omitempty"`
	Hour      *int     `json:"hour,omitempty"`
	Day       *int     `json:"day,omitempty"`
	Season    *int     `json:"season,omitempty"`
	Year      *int     `json:"year,omitempty"`
	TimeScale *float64 `json:"timeScale,omitempty"`
}

func newTimeSnapshot(s gametime.State) *TimeSnapshot {
	return &TimeSnapshot{
		Minute:    &s.Minute,
		Hour:      &s.Hour,
		Day:       &s.Day,
		Season:    &s.Season,
		Year:      &s.Year,
		TimeScale: &s.TimeScale,
	}
}

// State resolves missing fields to the new-game calendar
func (t *TimeSnapshot) State() gametime.State {
	s := gametime.DefaultState()
	if t == nil {
		return s
	}
	if t.Minute != nil {
		s.Minute = *t.Minute
	}
	if t.Hour != nil {
		s.Hour = *t.Hour
	}
	if t.Day != nil {
		s.Day = *t.Day
	}
	if t.Season != nil {
		s.Season = *t.Season
	}
	if t.Year != nil {
		s.Year = *t.Year
	}
	if t.TimeScale != nil {
		s.TimeScale = *t.TimeScale
	}
	return s
}

// Snapshot is the complete save document. Inn and guests are carried
// through untouched; crafting processes are not persisted.
type Snapshot struct {
	Player        *player.Player      `json:"player"`
	Inn           json.RawMessage     `json:"inn,omitempty"`
	Guests        json.RawMessage     `json:"guests,omitempty"`
	Time          *TimeSnapshot       `json:"time"`
	Resources     resource.State      `json:"resources"`
	Interactions  interaction.History `json:"interactions,omitempty"`
	SaveTimestamp Timestamp           `json:"saveTimestamp"`
}

// SavedAt converts the millisecond save timestamp
func (s Snapshot) SavedAt() time.Time {
	return time.UnixMilli(int64(s.SaveTimestamp))
}

// Timestamp is a save time in Unix milliseconds. It is written as a number
// and read from either a number or an RFC 3339 string, the form used by
// exports from the browser game.
type Timestamp int64

// UnmarshalJSON accepts 1700000000000 and "2023-11-14T22:13:20.000Z"
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return fmt.Errorf("invalid save timestamp %q: %w", text, err)
		}
		*t = Timestamp(parsed.UnixMilli())
		return nil
	}
	var millis float64
	if err := json.Unmarshal(data, &millis); err != nil {
		return fmt.Errorf("invalid save timestamp %s: %w", data, err)
	}
	*t = Timestamp(millis)
	return nil
}

// DefaultInn is the inn document of a new game
var DefaultInn = json.RawMessage(`{"name":"The Crossroads Inn","reputation":1,"rooms":[` +
	`{"id":"room1","name":"Cozy Corner","quality":1,"occupied":false,"furniture":["bed","table","chair"]},` +
	`{"id":"room2","name":"Forest View","quality":1,"occupied":false,"furniture":["bed","table","chair","bookshelf"]}` +
	`],"staff":[],"upgrades":[]}`)

// DefaultGuests is the empty guest list of a new game
var DefaultGuests = json.RawMessage(`[]`)

// DecodeSnapshot parses a save blob. A blob without a save timestamp is
// rejected as invalid.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	if snap.SaveTimestamp <= 0 {
		return Snapshot{}, ErrInvalidSave
	}
	return snap, nil
}

// Encode serializes the snapshot
func (s Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
