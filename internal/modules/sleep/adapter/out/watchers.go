package out

import "sync"

// watchers fans a change notification out to registered callbacks.
type watchers struct {
	mu     sync.Mutex
	fns    map[uint64]func()
	nextID uint64
}

func (w *watchers) add(fn func()) func() {
	w.mu.Lock()
	if w.fns == nil {
		w.fns = map[uint64]func(){}
	}
	id := w.nextID
	w.nextID++
	w.fns[id] = fn
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.fns, id)
			w.mu.Unlock()
		})
	}
}

func (w *watchers) notify() {
	w.mu.Lock()
	fns := make([]func(), 0, len(w.fns))
	for _, fn := range w.fns {
		fns = append(fns, fn)
	}
	w.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
