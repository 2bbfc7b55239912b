package events

import (
	"sort"
	"sync"
)

// Hub holds one Bus per storage key. Stores announce through their own topic;
// the durable-store watcher publishes keys written by other processes so
// subscribers of unrelated keys never fire.
type Hub struct {
	mu     sync.Mutex
	topics map[string]*Bus
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]*Bus)}
}

func (hub *Hub) Topic(key string) *Bus {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	bus, ok := hub.topics[key]
	if !ok {
		bus = NewBus()
		hub.topics[key] = bus
	}
	return bus
}

// Publish announces a change of key. An empty key means the whole namespace
// was cleared and fires every topic.
func (hub *Hub) Publish(key string) {
	if key != "" {
		hub.Topic(key).Announce()
		return
	}
	for _, bus := range hub.snapshot() {
		bus.Announce()
	}
}

func (hub *Hub) Keys() []string {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	keys := make([]string, 0, len(hub.topics))
	for key := range hub.topics {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (hub *Hub) snapshot() []*Bus {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	keys := make([]string, 0, len(hub.topics))
	for key := range hub.topics {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	buses := make([]*Bus, 0, len(keys))
	for _, key := range keys {
		buses = append(buses, hub.topics[key])
	}
	return buses
}
