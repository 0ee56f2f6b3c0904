package interaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// Kind distinguishes interactable objects from NPCs
type Kind string

const (
	KindObject Kind = "object"
	KindNPC    Kind = "npc"
)

// DialogInteraction is the NPC interaction type that speaks a dialogue line
const DialogInteraction = "dialog"

const (
	DefaultDwell        = 3 * time.Second
	DefaultHistoryLimit = 100
	defaultTopic        = "greeting"
)

var (
	ErrUnknownTarget          = errors.New("interaction target not found")
	ErrUnsupportedInteraction = errors.New("interaction type not supported")
)

// Request is a queued interaction
type Request struct {
	Kind            Kind
	TargetID        string
	InteractionType string
	Options         map[string]string
	QueuedAt        time.Time
}

// Record is one completed interaction in a target's history
type Record struct {
	InteractionType string    `json:"type"`
	Timestamp       time.Time `json:"timestamp"`
}

// History maps target ids to their completed interactions, oldest first
type History map[string][]Record

// Config tunes queue behavior
type Config struct {
	// Dwell is the real time an active interaction lasts
	Dwell time.Duration
	// HistoryLimit caps records kept per target. Zero selects the default
	// and a negative value keeps everything.
	HistoryLimit int
}

type active struct {
	req       Request
	elapsed   time.Duration
	returning bool
}

// Queue sequences interactions one at a time in FIFO order
type Queue struct {
	targets map[Kind]map[string]map[string]bool
	pending []Request
	current *active
	history History

	cfg      Config
	dialogue *DialogueBook

	clock     shared.Clock
	publisher events.Publisher
	logger    shared.Logger
}

func NewQueue(cfg Config, dialogue *DialogueBook, clock shared.Clock, publisher events.Publisher, logger shared.Logger) *Queue {
	if cfg.Dwell <= 0 {
		cfg.Dwell = DefaultDwell
	}
	if cfg.HistoryLimit == 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if dialogue == nil {
		dialogue = NewDialogueBook(1)
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Queue{
		targets: map[Kind]map[string]map[string]bool{
			KindObject: {},
			KindNPC:    {},
		},
		history:   make(History),
		cfg:       cfg,
		dialogue:  dialogue,
		clock:     clock,
		publisher: events.PublisherOrDiscard(publisher),
		logger:    shared.LoggerOrNoOp(logger),
	}
}

// RegisterObject makes an object available for the given interaction types
func (q *Queue) RegisterObject(id string, interactions ...string) error {
	return q.register(KindObject, id, interactions)
}

// RegisterNPC makes an NPC available for the given interaction types
func (q *Queue) RegisterNPC(id string, interactions ...string) error {
	return q.register(KindNPC, id, interactions)
}

func (q *Queue) register(kind Kind, id string, interactions []string) error {
	if id == "" {
		return shared.NewValidationError("id", "must not be empty")
	}
	supported := make(map[string]bool, len(interactions))
	for _, it := range interactions {
		supported[it] = true
	}
	q.targets[kind][id] = supported
	return nil
}

// Enqueue validates and appends a request
func (q *Queue) Enqueue(req Request) error {
	supported, ok := q.targets[req.Kind][req.TargetID]
	if !ok {
		return q.fail(fmt.Errorf("%w: %s %s", ErrUnknownTarget, req.Kind, req.TargetID))
	}
	if !supported[req.InteractionType] {
		return q.fail(fmt.Errorf("%w: %s %s does not support %s", ErrUnsupportedInteraction, req.Kind, req.TargetID, req.InteractionType))
	}

	req.QueuedAt = q.clock.Now()
	q.pending = append(q.pending, req)
	q.logger.Log(shared.LevelDebug, "Queued interaction", map[string]interface{}{
		"kind":        string(req.Kind),
		"target":      req.TargetID,
		"interaction": req.InteractionType,
	})
	return nil
}

// InteractWithObject queues an object interaction
func (q *Queue) InteractWithObject(objectID, interactionType string) error {
	return q.Enqueue(Request{Kind: KindObject, TargetID: objectID, InteractionType: interactionType})
}

// InteractWithNPC queues an NPC interaction; dialog requests read "topic"
// and "variant" from options.
func (q *Queue) InteractWithNPC(npcID, interactionType string, options map[string]string) error {
	return q.Enqueue(Request{Kind: KindNPC, TargetID: npcID, InteractionType: interactionType, Options: options})
}

// Update ends the active interaction once its dwell time has elapsed and
// starts the next pending one when none is active.
func (q *Queue) Update(delta time.Duration) {
	if q.current != nil && delta > 0 {
		q.current.elapsed += delta
		if q.current.elapsed >= q.cfg.Dwell {
			q.endCurrent()
		}
	}
	if q.current == nil && len(q.pending) > 0 {
		q.startNext()
	}
}

func (q *Queue) startNext() {
	req := q.pending[0]
	q.pending[0] = Request{}
	q.pending = q.pending[1:]

	returning := q.HasInteractedBefore(req.TargetID)
	q.current = &active{req: req, returning: returning}

	q.publisher.Publish(events.EventTypeInteractionStarted, events.InteractionData{
		Kind:            string(req.Kind),
		TargetID:        req.TargetID,
		InteractionType: req.InteractionType,
		Returning:       returning,
	})

	if req.Kind == KindNPC && req.InteractionType == DialogInteraction {
		q.speak(req, returning)
	}
}

func (q *Queue) speak(req Request, returning bool) {
	topic := req.Options["topic"]
	if topic == "" {
		topic = defaultTopic
	}
	line, ok := q.dialogue.Line(topic, req.Options["variant"], returning)
	if !ok {
		q.logger.Log(shared.LevelWarn, "No dialogue for topic", map[string]interface{}{
			"npc":   req.TargetID,
			"topic": topic,
		})
		return
	}
	q.publisher.Publish(events.EventTypeDialogueSpoken, events.DialogueData{
		NPCID: req.TargetID,
		Topic: topic,
		Line:  line,
	})
}

func (q *Queue) endCurrent() {
	req := q.current.req
	q.record(req.TargetID, Record{InteractionType: req.InteractionType, Timestamp: q.clock.Now()})
	q.current = nil

	q.publisher.Publish(events.EventTypeInteractionEnded, events.InteractionData{
		Kind:            string(req.Kind),
		TargetID:        req.TargetID,
		InteractionType: req.InteractionType,
	})
}

func (q *Queue) record(targetID string, rec Record) {
	records := append(q.history[targetID], rec)
	if limit := q.cfg.HistoryLimit; limit > 0 && len(records) > limit {
		records = append([]Record(nil), records[len(records)-limit:]...)
	}
	q.history[targetID] = records
}

// Current returns the active request, if any
func (q *Queue) Current() (Request, bool) {
	if q.current == nil {
		return Request{}, false
	}
	return q.current.req, true
}

// Pending reports how many requests are waiting
func (q *Queue) Pending() int {
	return len(q.pending)
}

// HasInteractedBefore reports whether any interaction with the target has completed
func (q *Queue) HasInteractedBefore(targetID string) bool {
	return len(q.history[targetID]) > 0
}

// History returns a copy of a target's records, oldest first
func (q *Queue) History(targetID string) []Record {
	return append([]Record(nil), q.history[targetID]...)
}

// State exports every target's history
func (q *Queue) State() History {
	out := make(History, len(q.history))
	for id, records := range q.history {
		out[id] = append([]Record(nil), records...)
	}
	return out
}

// LoadState replaces the history, applying the configured cap
func (q *Queue) LoadState(h History) {
	q.history = make(History, len(h))
	for id, records := range h {
		for _, rec := range records {
			q.record(id, rec)
		}
	}
}

// Reset clears pending and active interactions, keeping history
func (q *Queue) Reset() {
	q.pending = nil
	q.current = nil
}

func (q *Queue) fail(err error) error {
	q.logger.Log(shared.LevelWarn, "Interaction rejected", map[string]interface{}{
		"error": err.Error(),
	})
	return err
}
