package memory

import "sync"

// UserRepo is the in-memory fallback when no sqlite DSN is configured.
type UserRepo struct {
	mu      sync.RWMutex
	chatIDs map[int64]struct{}
}

func NewUserRepo() *UserRepo {
	return &UserRepo{chatIDs: make(map[int64]struct{})}
}

func (r *UserRepo) SaveUser(chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chatIDs[chatID] = struct{}{}
	return nil
}

func (r *UserRepo) ListChatIDs() ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]int64, 0, len(r.chatIDs))
	for id := range r.chatIDs {
		res = append(res, id)
	}
	return res, nil
}
