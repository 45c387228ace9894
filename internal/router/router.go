package router

import (
	"slices"
	"sync"
)

// Router keeps the current fragment in sync with a Location for as long as
// it is open.
type Router struct {
	loc Location

	mu       sync.RWMutex
	fragment string
	onChange []func(Route)

	unsubscribe func()
	closeOnce   sync.Once
}

// New reads the location once and subscribes to later changes. Call Close
// to release the subscription.
func New(loc Location) *Router {
	r := &Router{loc: loc, fragment: loc.Fragment()}
	r.unsubscribe = loc.Subscribe(r.update)
	return r
}

func (r *Router) update(fragment string) {
	r.mu.Lock()
	if r.fragment == fragment {
		r.mu.Unlock()
		return
	}
	r.fragment = fragment
	fns := slices.Clone(r.onChange)
	r.mu.Unlock()

	route := Parse(fragment)
	for _, fn := range fns {
		fn(route)
	}
}

// Fragment returns the last fragment observed.
func (r *Router) Fragment() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fragment
}

func (r *Router) Route() Route {
	return Parse(r.Fragment())
}

// OnChange registers fn to run after every fragment change.
func (r *Router) OnChange(fn func(Route)) {
	r.mu.Lock()
	r.onChange = append(r.onChange, fn)
	r.mu.Unlock()
}

// Back returns to the home view by writing HomeFragment to the location.
// The change comes back through the subscription like any other.
func (r *Router) Back() {
	r.loc.SetFragment(HomeFragment)
}

// Close drops the location subscription. It is safe to call more than once.
func (r *Router) Close() {
	r.closeOnce.Do(r.unsubscribe)
}
