package server

import (
	"sync"
	"time"

	"github.com/signadot/space/ir"
)

// DefaultBroadcastTimeout is the default timeout for sending changes to
// watchers. A watcher not reading within this time is failed.
const DefaultBroadcastTimeout = 5 * time.Second

// Change kinds.
const (
	ChangePut    = "put"
	ChangePatch  = "patch"
	ChangeOrder  = "order"
	ChangeDelete = "delete"
)

// Change is a committed modification of one document.
type Change struct {
	Key  string
	Kind string
	// Diff takes the previous version to the new one: a diff for put and
	// patch, an order document for order, nil for delete.
	Diff *ir.Node
}

// Node renders c as a change document.
func (c *Change) Node() *ir.Node {
	res := ir.FromKeyVals("key", c.Key, "kind", c.Kind)
	if c.Diff != nil {
		res.Append("diff", c.Diff.Clone())
	}
	return res
}

// Watcher receives the changes of one key on Events. If it cannot keep up,
// Failed is closed and it stops receiving.
type Watcher struct {
	Key    string
	Events chan *Change
	Failed chan struct{}

	failOnce sync.Once
}

// NewWatcher returns a watcher of key with a buffer of n changes.
func NewWatcher(key string, n int) *Watcher {
	return &Watcher{
		Key:    key,
		Events: make(chan *Change, n),
		Failed: make(chan struct{}),
	}
}

func (w *Watcher) fail() {
	w.failOnce.Do(func() { close(w.Failed) })
}

// WatchHub routes changes to the watchers of their key.
type WatchHub struct {
	mu               sync.RWMutex
	watchers         map[string]map[*Watcher]struct{}
	broadcastTimeout time.Duration
}

func NewWatchHub() *WatchHub {
	return NewWatchHubWithTimeout(DefaultBroadcastTimeout)
}

func NewWatchHubWithTimeout(timeout time.Duration) *WatchHub {
	return &WatchHub{
		watchers:         make(map[string]map[*Watcher]struct{}),
		broadcastTimeout: timeout,
	}
}

func (h *WatchHub) Watch(w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watchers[w.Key] == nil {
		h.watchers[w.Key] = make(map[*Watcher]struct{})
	}
	h.watchers[w.Key][w] = struct{}{}
}

func (h *WatchHub) Unwatch(w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(w)
}

func (h *WatchHub) remove(w *Watcher) {
	if ws, ok := h.watchers[w.Key]; ok {
		delete(ws, w)
		if len(ws) == 0 {
			delete(h.watchers, w.Key)
		}
	}
}

// Broadcast sends c to the watchers of c.Key. Watchers which block for
// longer than the broadcast timeout are failed and removed.
func (h *WatchHub) Broadcast(c *Change) {
	h.mu.RLock()
	targets := make([]*Watcher, 0, len(h.watchers[c.Key]))
	for w := range h.watchers[c.Key] {
		targets = append(targets, w)
	}
	h.mu.RUnlock()

	var failed []*Watcher
	for _, w := range targets {
		select {
		case <-w.Failed:
			continue
		default:
		}
		select {
		case w.Events <- c:
		case <-time.After(h.broadcastTimeout):
			w.fail()
			failed = append(failed, w)
		case <-w.Failed:
		}
	}
	if len(failed) > 0 {
		h.mu.Lock()
		for _, w := range failed {
			h.remove(w)
		}
		h.mu.Unlock()
	}
}

// Close fails every watcher.
func (h *WatchHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, ws := range h.watchers {
		for w := range ws {
			w.fail()
		}
		delete(h.watchers, key)
	}
}

// WatcherCount returns the number of active watchers.
func (h *WatchHub) WatcherCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, ws := range h.watchers {
		n += len(ws)
	}
	return n
}
