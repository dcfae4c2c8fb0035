package serverio

import "sync"

// Listeners are told after a load has updated the registries
type Listeners struct {
	mu        sync.Mutex
	callbacks []func()
}

func (l *Listeners) Add(callback func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.callbacks = append(l.callbacks, callback)
}

func (l *Listeners) Fire() {
	l.mu.Lock()
	callbacks := append([]func(){}, l.callbacks...)
	l.mu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}
