package helpers

import (
	"context"
	"sync"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/production"
)

// MockDesignRepository is an in-memory test double for
// production.DesignRepository
type MockDesignRepository struct {
	mu      sync.RWMutex
	designs map[int]*production.Design
	nextID  int
}

// NewMockDesignRepository creates a new mock design repository
func NewMockDesignRepository() *MockDesignRepository {
	return &MockDesignRepository{designs: make(map[int]*production.Design), nextID: 1}
}

// ListByPlayer retrieves all blueprints owned by a player
func (m *MockDesignRepository) ListByPlayer(ctx context.Context, playerID int) ([]*production.Design, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*production.Design
	for id := 1; id < m.nextID; id++ {
		if d, ok := m.designs[id]; ok && d.PlayerID == playerID {
			copy := *d
			result = append(result, &copy)
		}
	}
	return result, nil
}

// Save persists a design
func (m *MockDesignRepository) Save(ctx context.Context, d *production.Design) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == 0 {
		d.ID = m.nextID
		m.nextID++
	} else if d.ID >= m.nextID {
		m.nextID = d.ID + 1
	}
	copy := *d
	m.designs[d.ID] = &copy
	return nil
}

// MockQueueRepository is an in-memory test double for
// production.QueueRepository
type MockQueueRepository struct {
	mu     sync.RWMutex
	items  map[int]*production.QueueItem
	nextID int
}

// NewMockQueueRepository creates a new mock build queue repository
func NewMockQueueRepository() *MockQueueRepository {
	return &MockQueueRepository{items: make(map[int]*production.QueueItem), nextID: 1}
}

// ListUnfinishedByPlayer retrieves a player's pending build orders
func (m *MockQueueRepository) ListUnfinishedByPlayer(ctx context.Context, playerID int) ([]*production.QueueItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*production.QueueItem
	for id := 1; id < m.nextID; id++ {
		if item, ok := m.items[id]; ok && item.PlayerID == playerID && !item.Finished {
			copy := *item
			result = append(result, &copy)
		}
	}
	return result, nil
}

// CountUnfinishedByPlanet counts pending build orders at a planet
func (m *MockQueueRepository) CountUnfinishedByPlanet(ctx context.Context, planetID int) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, item := range m.items {
		if item.PlanetID == planetID && !item.Finished {
			count++
		}
	}
	return count, nil
}

// Save persists a queue item
func (m *MockQueueRepository) Save(ctx context.Context, item *production.QueueItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.ID == 0 {
		item.ID = m.nextID
		m.nextID++
	} else if item.ID >= m.nextID {
		m.nextID = item.ID + 1
	}
	copy := *item
	m.items[item.ID] = &copy
	return nil
}
