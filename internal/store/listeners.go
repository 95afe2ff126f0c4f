package store

import "sync"

type listener struct {
	id uint64
	fn func()
}

// listeners is a registration-ordered subscriber list.
type listeners struct {
	mu     sync.Mutex
	nextID uint64
	subs   []listener
}

func (l *listeners) add(fn func()) func() {
	if fn == nil {
		return func() {}
	}

	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, listener{id: id, fn: fn})
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *listeners) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, s := range l.subs {
		if s.id == id {
			l.subs = append(l.subs[:i], l.subs[i+1:]...)
			return
		}
	}
}

// notify calls every listener. The list is copied first so listeners may
// subscribe, unsubscribe or read the store without deadlocking.
func (l *listeners) notify() {
	l.mu.Lock()
	subs := make([]listener, len(l.subs))
	copy(subs, l.subs)
	l.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}
