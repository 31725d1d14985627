package usecase

import "sync"

// Frontier is the ordered, de-duplicated set of league ids awaiting the
// next sync passes. Discovery appends, the coordinator drains after each
// pass. All methods are safe for concurrent use, though by construction
// only one pass mutates it at a time.
type Frontier struct {
	mu    sync.Mutex
	order []string
	seen  map[string]struct{}
}

func NewFrontier() *Frontier {
	return &Frontier{
		seen: make(map[string]struct{}),
	}
}

// Append adds ids not already queued, preserving arrival order, and
// returns how many were actually added.
func (f *Frontier) Append(ids ...string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	added := 0
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := f.seen[id]; ok {
			continue
		}
		f.seen[id] = struct{}{}
		f.order = append(f.order, id)
		added++
	}
	return added
}

// Remove drops the given ids from the queue. Unknown ids are ignored.
func (f *Frontier) Remove(ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(ids) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := f.seen[id]; ok {
			drop[id] = struct{}{}
			delete(f.seen, id)
		}
	}
	if len(drop) == 0 {
		return
	}

	kept := f.order[:0]
	for _, id := range f.order {
		if _, ok := drop[id]; ok {
			continue
		}
		kept = append(kept, id)
	}
	f.order = kept
}

func (f *Frontier) Contains(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.seen[id]
	return ok
}

func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.order)
}

// Snapshot returns a copy of the queued ids in arrival order.
func (f *Frontier) Snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}
