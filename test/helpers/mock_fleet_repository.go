package helpers

import (
	"context"
	"sync"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// MockFleetRepository is an in-memory test double for fleet.Repository
type MockFleetRepository struct {
	mu     sync.RWMutex
	fleets map[int]*fleet.Fleet
	nextID int
}

// NewMockFleetRepository creates a new mock fleet repository
func NewMockFleetRepository() *MockFleetRepository {
	return &MockFleetRepository{fleets: make(map[int]*fleet.Fleet), nextID: 1}
}

// FindByID retrieves a fleet by ID
func (m *MockFleetRepository) FindByID(ctx context.Context, fleetID int) (*fleet.Fleet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.fleets[fleetID]
	if !ok {
		return nil, shared.NewFleetError("fleet not found")
	}
	copy := *f
	return &copy, nil
}

// ListByGame retrieves every fleet of a game
func (m *MockFleetRepository) ListByGame(ctx context.Context, gameID int) ([]*fleet.Fleet, error) {
	return m.filter(func(f *fleet.Fleet) bool { return f.GameID == gameID }), nil
}

// ListByOwner retrieves all fleets of a player
func (m *MockFleetRepository) ListByOwner(ctx context.Context, ownerID int) ([]*fleet.Fleet, error) {
	return m.filter(func(f *fleet.Fleet) bool { return f.OwnerID == ownerID }), nil
}

// ListStationedAt retrieves the fleets currently stationed at a planet
func (m *MockFleetRepository) ListStationedAt(ctx context.Context, planetID int) ([]*fleet.Fleet, error) {
	return m.filter(func(f *fleet.Fleet) bool {
		return f.CurrentPlanetID == planetID && f.IsAvailable()
	}), nil
}

func (m *MockFleetRepository) filter(keep func(*fleet.Fleet) bool) []*fleet.Fleet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*fleet.Fleet
	for id := 1; id < m.nextID; id++ {
		if f, ok := m.fleets[id]; ok && keep(f) {
			copy := *f
			result = append(result, &copy)
		}
	}
	return result
}

// Save persists a fleet
func (m *MockFleetRepository) Save(ctx context.Context, f *fleet.Fleet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.ID == 0 {
		f.ID = m.nextID
		m.nextID++
	} else if f.ID >= m.nextID {
		m.nextID = f.ID + 1
	}
	copy := *f
	m.fleets[f.ID] = &copy
	return nil
}
