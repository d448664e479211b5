package notify

import "sync"

// MemoryFeed dispatches change notifications in-process. It is the default
// when no broker is configured and the implementation the tests run against.
type MemoryFeed struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]func()
}

func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{subs: make(map[string]map[int]func())}
}

func (f *MemoryFeed) Publish(topic string) {
	f.mu.Lock()
	var fns []func()
	for _, fn := range f.subs[topic] {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (f *MemoryFeed) Subscribe(topic string, onChange func()) Unsubscribe {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subs[topic] == nil {
		f.subs[topic] = make(map[int]func())
	}
	id := f.nextID
	f.nextID++
	f.subs[topic][id] = onChange
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs[topic], id)
	}
}

func (f *MemoryFeed) Close() {}
