package repository

import "sync"

// modeRepository holds the per-chat AutoVision gate. State lives in memory
// only and resets on restart. Updates race with concurrent photo handling,
// hence the mutex.
type modeRepository struct {
	mu        sync.RWMutex
	enabled   map[int64]bool
	defaultOn bool
}

func NewModeRepository(defaultOn bool) *modeRepository {
	return &modeRepository{
		enabled:   make(map[int64]bool),
		defaultOn: defaultOn,
	}
}

func (m *modeRepository) Enabled(chatID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if on, ok := m.enabled[chatID]; ok {
		return on
	}
	return m.defaultOn
}

func (m *modeRepository) Set(chatID int64, on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.enabled[chatID] = on
}
