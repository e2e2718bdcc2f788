package resource

import (
	"io"
	"sync"

	"go.uber.org/multierr"
)

// Table registers live values under handles and notifies observers.
type Table struct {
	store     *store
	observers map[int]Observer
	nextObs   int
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		store:     newStore(),
		observers: make(map[int]Observer),
	}
}

// Insert registers value and returns its handle.
// It returns 0 once the table is closed.
func (t *Table) Insert(value any) Handle {
	t.closeMu.RLock()
	if t.closed {
		t.closeMu.RUnlock()
		return 0
	}
	handle := t.store.create(value)
	t.closeMu.RUnlock()

	t.notify(Event{
		Type:   EventOpened,
		Handle: handle,
		Value:  value,
	})
	return handle
}

// Remove unregisters a value and returns (value, true) if it was live.
// It does not close the value.
func (t *Table) Remove(handle Handle) (any, bool) {
	value, ok := t.store.drop(handle)
	if !ok {
		return nil, false
	}

	t.notify(Event{
		Type:   EventClosed,
		Handle: handle,
		Value:  value,
	})
	return value, true
}

// Subscribe adds an observer and returns a function that removes it.
func (t *Table) Subscribe(o Observer) (unsubscribe func()) {
	t.obsMu.Lock()
	id := t.nextObs
	t.nextObs++
	t.observers[id] = o
	t.obsMu.Unlock()

	return func() {
		t.obsMu.Lock()
		delete(t.observers, id)
		t.obsMu.Unlock()
	}
}

// Len returns the number of live values.
func (t *Table) Len() int {
	return t.store.len()
}

// Each iterates over live values until fn returns false.
func (t *Table) Each(fn func(Handle, any) bool) {
	handles, values := t.store.snapshot()
	for i := range handles {
		if !fn(handles[i], values[i]) {
			return
		}
	}
}

// Closed reports whether Close has been called.
func (t *Table) Closed() bool {
	t.closeMu.RLock()
	defer t.closeMu.RUnlock()
	return t.closed
}

// Close stops accepting inserts and closes every live value implementing
// io.Closer. It is safe to call more than once.
func (t *Table) Close() error {
	t.closeMu.Lock()
	if t.closed {
		t.closeMu.Unlock()
		return nil
	}
	t.closed = true
	t.closeMu.Unlock()

	var err error
	handles, values := t.store.snapshot()
	for i, v := range values {
		if c, ok := v.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
		// values that do not unregister themselves are dropped here
		t.Remove(handles[i])
	}

	t.store.reset()
	return err
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
