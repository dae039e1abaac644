package store

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/angelcm/campaign-report-go/internal/models"
)

// MemoryStore keeps completed analyses for the HTTP surface. Entries are
// immutable once stored.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]*models.Analysis
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]*models.Analysis)}
}

// Put stores the analysis under a fresh ID and returns the stored copy.
func (s *MemoryStore) Put(a models.Analysis) *models.Analysis {
	a.ID = newID()
	a.CreatedAt = time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[a.ID] = &a
	return &a
}

func (s *MemoryStore) Get(id string) (*models.Analysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.m[id]
	return a, ok
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

func newID() string { b := make([]byte, 8); rand.Read(b); return hex.EncodeToString(b) }
