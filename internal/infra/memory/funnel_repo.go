package memory

import (
	"sync"

	"github.com/ParikhVedant/pare/internal/usecase"
)

type FunnelRepo struct {
	mu     sync.RWMutex
	counts map[usecase.Stage]map[string]struct{}
}

func NewFunnelRepo() *FunnelRepo {
	return &FunnelRepo{counts: make(map[usecase.Stage]map[string]struct{})}
}

func (r *FunnelRepo) Hit(stage usecase.Stage, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.counts[stage]
	if !ok {
		m = make(map[string]struct{})
		r.counts[stage] = m
	}
	m[sessionID] = struct{}{}
	return nil
}

func (r *FunnelRepo) Counts() map[usecase.Stage]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[usecase.Stage]int, len(r.counts))
	for s, set := range r.counts {
		out[s] = len(set)
	}
	return out
}
