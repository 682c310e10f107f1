package nav

import (
	"sync"
)

// Listener is called after the current location changes.
type Listener func(Route)

// Router keeps the in-app history stack. It is safe for concurrent use;
// listeners run on the goroutine that changed the location.
type Router struct {
	mu        sync.RWMutex
	history   []Route
	listeners []Listener
}

// NewRouter creates a router positioned at start, or at the home page when
// start is empty or unparsable.
func NewRouter(start string) *Router {
	r, err := Parse(start)
	if err != nil {
		r, _ = Parse(HomePath)
	}
	return &Router{history: []Route{r}}
}

// Current returns the active route.
func (r *Router) Current() Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.history[len(r.history)-1]
}

// Depth returns the number of entries in the history stack.
func (r *Router) Depth() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.history)
}

// Push navigates to location, adding a history entry.
func (r *Router) Push(location string) (Route, error) {
	route, err := Parse(location)
	if err != nil {
		return Route{}, err
	}

	r.mu.Lock()
	r.history = append(r.history, route)
	r.mu.Unlock()

	r.notify(route)
	return route, nil
}

// Replace navigates to location in place of the current entry.
func (r *Router) Replace(location string) (Route, error) {
	route, err := Parse(location)
	if err != nil {
		return Route{}, err
	}

	r.mu.Lock()
	r.history[len(r.history)-1] = route
	r.mu.Unlock()

	r.notify(route)
	return route, nil
}

// Back pops the current entry. It reports false at the first entry.
func (r *Router) Back() (Route, bool) {
	r.mu.Lock()
	if len(r.history) == 1 {
		cur := r.history[0]
		r.mu.Unlock()
		return cur, false
	}
	r.history = r.history[:len(r.history)-1]
	route := r.history[len(r.history)-1]
	r.mu.Unlock()

	r.notify(route)
	return route, true
}

// Subscribe registers l for location changes.
func (r *Router) Subscribe(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

func (r *Router) notify(route Route) {
	r.mu.RLock()
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.RUnlock()

	for _, l := range listeners {
		l(route)
	}
}
