package helpers

import (
	"context"
	"sync"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// MockPlanetRepository is an in-memory test double for galaxy.Repository
type MockPlanetRepository struct {
	mu      sync.RWMutex
	planets map[int]*galaxy.Planet
	nextID  int
}

// NewMockPlanetRepository creates a new mock planet repository
func NewMockPlanetRepository() *MockPlanetRepository {
	return &MockPlanetRepository{planets: make(map[int]*galaxy.Planet), nextID: 1}
}

// FindByID retrieves a planet by ID
func (m *MockPlanetRepository) FindByID(ctx context.Context, planetID int) (*galaxy.Planet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.planets[planetID]
	if !ok {
		return nil, shared.NewPlanetError("planet not found")
	}
	copy := *p
	return &copy, nil
}

// ListByGame retrieves every planet of a game
func (m *MockPlanetRepository) ListByGame(ctx context.Context, gameID int) ([]*galaxy.Planet, error) {
	return m.filter(func(p *galaxy.Planet) bool { return p.GameID == gameID }), nil
}

// ListByOwner retrieves all planets held by a player
func (m *MockPlanetRepository) ListByOwner(ctx context.Context, ownerID int) ([]*galaxy.Planet, error) {
	return m.filter(func(p *galaxy.Planet) bool {
		return p.OwnerID != nil && *p.OwnerID == ownerID
	}), nil
}

// ListColoniesByOwner retrieves a player's colonized and developed planets
func (m *MockPlanetRepository) ListColoniesByOwner(ctx context.Context, ownerID int) ([]*galaxy.Planet, error) {
	return m.filter(func(p *galaxy.Planet) bool {
		return p.OwnerID != nil && *p.OwnerID == ownerID && p.IsColony()
	}), nil
}

func (m *MockPlanetRepository) filter(keep func(*galaxy.Planet) bool) []*galaxy.Planet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*galaxy.Planet
	for id := 1; id < m.nextID; id++ {
		if p, ok := m.planets[id]; ok && keep(p) {
			copy := *p
			result = append(result, &copy)
		}
	}
	return result
}

// Save persists a planet
func (m *MockPlanetRepository) Save(ctx context.Context, p *galaxy.Planet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.save(p)
	return nil
}

// SaveAll persists a batch of planets
func (m *MockPlanetRepository) SaveAll(ctx context.Context, planets []*galaxy.Planet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range planets {
		m.save(p)
	}
	return nil
}

func (m *MockPlanetRepository) save(p *galaxy.Planet) {
	if p.ID == 0 {
		p.ID = m.nextID
		m.nextID++
	} else if p.ID >= m.nextID {
		m.nextID = p.ID + 1
	}
	copy := *p
	m.planets[p.ID] = &copy
}
