package track

import (
	"sync"
)

// Table records live objects by handle with free-list reuse.
// Safe for concurrent use.
type Table struct {
	entries   []entry
	freeList  []Handle
	live      int
	mu        sync.RWMutex
	observers []Observer
	obsMu     sync.RWMutex
}

type entry struct {
	value any
	kind  string
	valid bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Insert records value under kind and returns its handle.
func (t *Table) Insert(kind string, value any) Handle {
	e := entry{
		kind:  kind,
		value: value,
		valid: true,
	}

	t.mu.Lock()
	var handle Handle
	if n := len(t.freeList); n > 0 {
		handle = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[handle-1] = e
	} else {
		t.entries = append(t.entries, e)
		handle = Handle(len(t.entries))
	}
	t.live++
	t.mu.Unlock()

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		Kind:   kind,
		Value:  value,
	})

	return handle
}

// Get retrieves a value by handle.
func (t *Table) Get(handle Handle) (any, bool) {
	if handle == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := int(handle - 1)
	if idx >= len(t.entries) || !t.entries[idx].valid {
		return nil, false
	}
	return t.entries[idx].value, true
}

// Remove forgets a handle and returns (value, true) if it was live.
func (t *Table) Remove(handle Handle) (any, bool) {
	if handle == 0 {
		return nil, false
	}

	t.mu.Lock()
	idx := int(handle - 1)
	if idx >= len(t.entries) || !t.entries[idx].valid {
		t.mu.Unlock()
		return nil, false
	}
	e := t.entries[idx]
	t.entries[idx] = entry{}
	t.freeList = append(t.freeList, handle)
	t.live--
	t.mu.Unlock()

	t.notify(Event{
		Type:   EventDestroyed,
		Handle: handle,
		Kind:   e.kind,
		Value:  e.value,
	})

	return e.value, true
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}

// Each iterates over live entries until fn returns false.
// The table is read-locked for the duration; fn must not modify it.
func (t *Table) Each(fn func(Entry) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if !e.valid {
			continue
		}
		if !fn(Entry{Handle: Handle(i + 1), Kind: e.kind, Value: e.value}) {
			return
		}
	}
}

// Snapshot returns a copy of all live entries in handle order.
func (t *Table) Snapshot() []Entry {
	var out []Entry
	t.Each(func(e Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}

// CountByKind returns the number of live entries for each kind.
func (t *Table) CountByKind() map[string]int {
	counts := make(map[string]int)
	t.Each(func(e Entry) bool {
		counts[e.Kind]++
		return true
	})
	return counts
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnObjectEvent(e)
	}
}
