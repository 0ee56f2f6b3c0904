package events

// Recorder buffers events so a presentation layer can consume them once per frame.
type Recorder struct {
	buffer []Event
	filter map[EventType]bool
}

// NewRecorder records every event, or only the given types when any are passed.
func NewRecorder(types ...EventType) *Recorder {
	r := &Recorder{}
	if len(types) > 0 {
		r.filter = make(map[EventType]bool, len(types))
		for _, t := range types {
			r.filter[t] = true
		}
	}
	return r
}

func (r *Recorder) OnEvent(ev Event) {
	if r.filter != nil && !r.filter[ev.Type] {
		return
	}
	r.buffer = append(r.buffer, ev)
}

// Drain returns the buffered events in delivery order and empties the buffer.
func (r *Recorder) Drain() []Event {
	out := r.buffer
	r.buffer = nil
	return out
}

// Len reports how many events are buffered.
func (r *Recorder) Len() int {
	return len(r.buffer)
}
