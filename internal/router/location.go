package router

import "sync"

// Location is the host-owned fragment (the part of the address after '#').
// The router only reads it, except for Back.
type Location interface {
	Fragment() string
	SetFragment(fragment string)
	// Subscribe registers fn for fragment changes and returns a function
	// that removes the registration.
	Subscribe(fn func(fragment string)) (unsubscribe func())
}

// MemoryLocation is an in-process Location. Like a browser's hashchange
// event, subscribers only hear about writes that change the value.
type MemoryLocation struct {
	mu       sync.Mutex
	fragment string
	nextID   int
	subs     map[int]func(string)
}

func NewMemoryLocation(fragment string) *MemoryLocation {
	return &MemoryLocation{fragment: fragment, subs: make(map[int]func(string))}
}

func (l *MemoryLocation) Fragment() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fragment
}

// SetFragment stores fragment and notifies subscribers synchronously, outside
// the lock, so a subscriber may read or write the location again.
func (l *MemoryLocation) SetFragment(fragment string) {
	l.mu.Lock()
	if l.fragment == fragment {
		l.mu.Unlock()
		return
	}
	l.fragment = fragment
	fns := make([]func(string), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(fragment)
	}
}

func (l *MemoryLocation) Subscribe(fn func(string)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
		})
	}
}

// Subscribers reports how many registrations are live.
func (l *MemoryLocation) Subscribers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}
