package helpers

import (
	"context"
	"sync"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// MockTechnologyRepository is an in-memory test double for
// player.TechnologyRepository
type MockTechnologyRepository struct {
	mu     sync.RWMutex
	sheets map[int]*player.Technology
}

// NewMockTechnologyRepository creates a new mock technology repository
func NewMockTechnologyRepository() *MockTechnologyRepository {
	return &MockTechnologyRepository{sheets: make(map[int]*player.Technology)}
}

// FindByPlayer retrieves a player's research sheet
func (m *MockTechnologyRepository) FindByPlayer(ctx context.Context, playerID int) (*player.Technology, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.sheets[playerID]
	if !ok {
		return nil, shared.NewPlayerError("no technology sheet")
	}
	return cloneTechnology(t), nil
}

// Save persists a research sheet
func (m *MockTechnologyRepository) Save(ctx context.Context, tech *player.Technology) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[tech.PlayerID] = cloneTechnology(tech)
	return nil
}

func cloneTechnology(t *player.Technology) *player.Technology {
	clone := &player.Technology{
		PlayerID: t.PlayerID,
		Domains:  make(map[player.TechDomain]*player.DomainState, len(t.Domains)),
	}
	for d, s := range t.Domains {
		state := *s
		clone.Domains[d] = &state
	}
	return clone
}

// MockBreakthroughRepository is an in-memory test double for
// player.BreakthroughRepository
type MockBreakthroughRepository struct {
	mu            sync.RWMutex
	breakthroughs map[int]*player.Breakthrough
	nextID        int
}

// NewMockBreakthroughRepository creates a new mock breakthrough repository
func NewMockBreakthroughRepository() *MockBreakthroughRepository {
	return &MockBreakthroughRepository{breakthroughs: make(map[int]*player.Breakthrough), nextID: 1}
}

// ListPendingByPlayer retrieves a player's unresolved breakthroughs
func (m *MockBreakthroughRepository) ListPendingByPlayer(ctx context.Context, playerID int) ([]*player.Breakthrough, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*player.Breakthrough
	for id := 1; id < m.nextID; id++ {
		b, ok := m.breakthroughs[id]
		if ok && b.PlayerID == playerID && b.Status == player.BreakthroughPending {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

// Save persists a breakthrough
func (m *MockBreakthroughRepository) Save(ctx context.Context, b *player.Breakthrough) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == 0 {
		b.ID = m.nextID
		m.nextID++
	} else if b.ID >= m.nextID {
		m.nextID = b.ID + 1
	}
	copy := *b
	m.breakthroughs[b.ID] = &copy
	return nil
}
