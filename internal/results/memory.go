package results

import "sync"

// MemoryRepository backs the history when no database is configured, and
// tests. Append order is the slice order.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []QuizResult
	nextSeq int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(result *QuizResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSeq++
	result.Seq = r.nextSeq
	r.entries = append(r.entries, *result)
	return nil
}

func (r *MemoryRepository) ListAll() ([]QuizResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]QuizResult, len(r.entries))
	copy(out, r.entries)
	return out, nil
}
