package interaction

import (
	"math/rand/v2"
	"sort"
)

// Topic holds the candidate lines for one conversation subject.
// FirstTime and Returning partition greetings by whether the NPC has been
// met before; Variants hold lines picked by name (e.g. request/room).
type Topic struct {
	FirstTime []string
	Returning []string
	Variants  map[string][]string
}

func (t Topic) all() []string {
	lines := append([]string{}, t.FirstTime...)
	lines = append(lines, t.Returning...)
	names := make([]string, 0, len(t.Variants))
	for name := range t.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, t.Variants[name]...)
	}
	return lines
}

// DialogueBook selects NPC lines uniformly at random from its topics
type DialogueBook struct {
	topics map[string]Topic
	rng    *rand.Rand
}

// NewDialogueBook creates an empty book whose choices are reproducible for a given seed
func NewDialogueBook(seed uint64) *DialogueBook {
	return &DialogueBook{
		topics: make(map[string]Topic),
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// AddTopic registers or replaces a topic
func (b *DialogueBook) AddTopic(name string, topic Topic) {
	b.topics[name] = topic
}

// HasTopic reports whether a topic is registered
func (b *DialogueBook) HasTopic(name string) bool {
	_, ok := b.topics[name]
	return ok
}

// Line picks a line for topic. A named variant wins when present; otherwise
// the returning or first-time partition is used when it has lines, falling
// back to every line in the topic.
func (b *DialogueBook) Line(topic, variant string, returning bool) (string, bool) {
	t, ok := b.topics[topic]
	if !ok {
		return "", false
	}

	candidates := t.Variants[variant]
	if len(candidates) == 0 {
		if returning {
			candidates = t.Returning
		} else {
			candidates = t.FirstTime
		}
	}
	if len(candidates) == 0 {
		candidates = t.all()
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[b.rng.IntN(len(candidates))], true
}

// NewDefaultDialogueBook creates a book with the inn's standard topics
func NewDefaultDialogueBook(seed uint64) *DialogueBook {
	b := NewDialogueBook(seed)
	b.AddTopic("greeting", Topic{
		FirstTime: []string{
			"Welcome to the Crossroads Inn!",
			"Hello there! How can I help you today?",
			"Good day! What brings you to our inn?",
		},
		Returning: []string{
			"Welcome back! It's good to see you again.",
			"You've returned! How was your journey?",
			"A familiar face! How have you been?",
		},
	})
	b.AddTopic("farewell", Topic{
		Variants: map[string][]string{
			"satisfied": {
				"Thank you for your hospitality! I'll be sure to return.",
				"What a lovely stay. Until next time!",
				"I feel so refreshed. I'll recommend this place to others!",
			},
			"neutral": {
				"Thank you. I should be on my way now.",
				"I appreciate the room. Farewell.",
				"Time for me to continue my journey. Goodbye.",
			},
		},
	})
	b.AddTopic("request", Topic{
		Variants: map[string][]string{
			"room": {
				"I'm looking for a place to rest. Do you have any rooms available?",
				"I need a room for the night. What do you have?",
				"I'm weary from my travels. Is there a bed I could sleep in?",
			},
			"food": {
				"I'm famished! What's cooking today?",
				"Something smells delicious. Could I see a menu?",
				"Do you serve meals here? I haven't eaten all day.",
			},
			"information": {
				"I'm new to these parts. What can you tell me about this area?",
				"Have you heard any interesting news lately?",
				"I'm looking for someone. Perhaps you've seen them pass through?",
			},
		},
	})
	return b
}
