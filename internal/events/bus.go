// Package events carries "persisted data changed" announcements from the
// stores to their subscribers.
package events

import (
	"sort"
	"sync"
)

// Bus is an explicit subscriber list owned by one store. Announce runs the
// callbacks synchronously on the caller's goroutine, outside the bus lock,
// so a callback may subscribe, unsubscribe or call back into the store.
// The bus has no reentrancy guard.
type Bus struct {
	mu          sync.Mutex
	nextID      uint64
	subscribers map[uint64]func()
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[uint64]func())}
}

// Subscribe registers onChange and returns a function that removes it. The
// returned function is safe to call more than once.
func (bus *Bus) Subscribe(onChange func()) func() {
	if onChange == nil {
		return func() {}
	}

	bus.mu.Lock()
	id := bus.nextID
	bus.nextID++
	bus.subscribers[id] = onChange
	bus.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			bus.mu.Lock()
			delete(bus.subscribers, id)
			bus.mu.Unlock()
		})
	}
}

func (bus *Bus) Announce() {
	bus.mu.Lock()
	ids := make([]uint64, 0, len(bus.subscribers))
	for id := range bus.subscribers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	callbacks := make([]func(), 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, bus.subscribers[id])
	}
	bus.mu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}

func (bus *Bus) Len() int {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	return len(bus.subscribers)
}
