package chat

import (
	"sync"

	"github.com/coordinator-insight/backend/internal/model/chat"
)

// Watcher coalesces session snapshots for one consumer. Intermediate versions
// may be skipped; the newest is always delivered.
type Watcher struct {
	mu          sync.Mutex
	latest      chat.Snapshot
	ready       chan struct{}
	done        chan struct{}
	once        sync.Once
	unsubscribe func()
}

// Watch subscribes a Watcher primed with the current snapshot.
func (s *Session) Watch() *Watcher {
	w := &Watcher{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	w.unsubscribe = s.Subscribe(w.push)
	w.push(s.Snapshot())
	return w
}

func (w *Watcher) push(snap chat.Snapshot) {
	w.mu.Lock()
	if snap.Version >= w.latest.Version {
		w.latest = snap
	}
	w.mu.Unlock()

	select {
	case w.ready <- struct{}{}:
	default:
	}
}

// Ready fires when a newer snapshot may be available.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Done is closed by Close.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Latest returns the newest snapshot seen.
func (w *Watcher) Latest() chat.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.latest
}

// Close unsubscribes. It is safe to call more than once.
func (w *Watcher) Close() {
	w.once.Do(func() {
		w.unsubscribe()
		close(w.done)
	})
}
