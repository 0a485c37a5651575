package adminclient

import "sync"

// SeenSet is a small concurrency-safe string set used for client-side
// de-duplication: checkout sessions already pushed through payment-success,
// and purchases already reported to analytics.
type SeenSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewSeenSet() *SeenSet {
	return &SeenSet{seen: make(map[string]struct{})}
}

// MarkOnce records id and reports whether this call was the first sighting.
func (s *SeenSet) MarkOnce(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	return true
}

func (s *SeenSet) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[id]
	return ok
}
