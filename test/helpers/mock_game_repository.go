package helpers

import (
	"context"
	"sync"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/game"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// MockGameRepository is an in-memory test double for game.Repository
type MockGameRepository struct {
	mu     sync.RWMutex
	games  map[int]*game.Game
	nextID int
}

// NewMockGameRepository creates a new mock game repository
func NewMockGameRepository() *MockGameRepository {
	return &MockGameRepository{games: make(map[int]*game.Game), nextID: 1}
}

// FindByID retrieves a game by ID
func (m *MockGameRepository) FindByID(ctx context.Context, gameID int) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[gameID]
	if !ok {
		return nil, shared.NewGameError("game not found")
	}
	copy := *g
	return &copy, nil
}

// ListByStatus retrieves games in the given lifecycle state
func (m *MockGameRepository) ListByStatus(ctx context.Context, status game.Status) ([]*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*game.Game
	for id := 1; id < m.nextID; id++ {
		if g, ok := m.games[id]; ok && g.Status == status {
			copy := *g
			result = append(result, &copy)
		}
	}
	return result, nil
}

// Save persists a game
func (m *MockGameRepository) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID == 0 {
		g.ID = m.nextID
		m.nextID++
	} else if g.ID >= m.nextID {
		m.nextID = g.ID + 1
	}
	copy := *g
	m.games[g.ID] = &copy
	return nil
}
