package handles

import (
	"sync"

	"github.com/reusee/starbind/errs"
	"github.com/ygrebnov/errorc"
)

type EventType uint8

const (
	EventCreated EventType = iota
	EventDestroyed
)

func (e EventType) String() string {
	switch e {
	case EventCreated:
		return "created"
	case EventDestroyed:
		return "destroyed"
	}
	return "unknown"
}

type Event struct {
	Type   EventType
	ID     ID
	Class  string
	Native any
	// Err is a destructor failure on EventDestroyed.
	Err error
}

type Observer interface {
	OnHandleEvent(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) OnHandleEvent(e Event) {
	f(e)
}

// Table holds every live handle of one registration table.
type Table struct {
	mu        sync.Mutex
	nextID    ID
	live      map[ID]*Handle
	closed    bool
	observers []Observer
}

func NewTable() *Table {
	return &Table{
		live: make(map[ID]*Handle),
	}
}

// Insert creates a live handle owning native.
func (t *Table) Insert(class string, native any, destroy func(any)) (*Handle, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, errorc.With(
			errs.ErrUseAfterFree,
			errorc.String(errs.FieldClass, class),
			errorc.String(errs.FieldReason, "handle table closed"),
		)
	}
	t.nextID++
	h := &Handle{
		id:      t.nextID,
		class:   class,
		state:   Live,
		native:  native,
		destroy: destroy,
		table:   t,
	}
	t.live[h.id] = h
	observers := t.observers
	t.mu.Unlock()

	notify(observers, Event{
		Type:   EventCreated,
		ID:     h.id,
		Class:  class,
		Native: native,
	})
	return h, nil
}

func (t *Table) Get(id ID) (*Handle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	h, ok := t.live[id]
	return h, ok
}

func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Each calls fn on a snapshot of the live handles.
func (t *Table) Each(fn func(*Handle) bool) {
	t.mu.Lock()
	handles := make([]*Handle, 0, len(t.live))
	for _, h := range t.live {
		handles = append(handles, h)
	}
	t.mu.Unlock()
	for _, h := range handles {
		if !fn(h) {
			return
		}
	}
}

func (t *Table) Subscribe(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, o)
}

// Close stops accepting handles and destroys the live ones.
// It returns the number of handles destroyed.
func (t *Table) Close() int {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()

	n := 0
	t.Each(func(h *Handle) bool {
		if h.Release() {
			n++
		}
		return true
	})
	return n
}

func (t *Table) drop(h *Handle, err error) {
	t.mu.Lock()
	delete(t.live, h.id)
	observers := t.observers
	t.mu.Unlock()

	notify(observers, Event{
		Type:  EventDestroyed,
		ID:    h.id,
		Class: h.class,
		Err:   err,
	})
}

func notify(observers []Observer, e Event) {
	for _, o := range observers {
		o.OnHandleEvent(e)
	}
}
