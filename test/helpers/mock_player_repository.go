package helpers

import (
	"context"
	"sync"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/shared"
)

// MockPlayerRepository is an in-memory test double for player.Repository
type MockPlayerRepository struct {
	mu      sync.RWMutex
	players map[int]*player.Player
	nextID  int
}

// NewMockPlayerRepository creates a new mock player repository
func NewMockPlayerRepository() *MockPlayerRepository {
	return &MockPlayerRepository{players: make(map[int]*player.Player), nextID: 1}
}

// FindByID retrieves a player by ID
func (m *MockPlayerRepository) FindByID(ctx context.Context, playerID int) (*player.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[playerID]
	if !ok {
		return nil, shared.NewPlayerError("player not found")
	}
	copy := *p
	return &copy, nil
}

// ListByGame retrieves all players of a game
func (m *MockPlayerRepository) ListByGame(ctx context.Context, gameID int) ([]*player.Player, error) {
	return m.list(gameID, false), nil
}

// ListActiveByGame retrieves the players of a game still in play
func (m *MockPlayerRepository) ListActiveByGame(ctx context.Context, gameID int) ([]*player.Player, error) {
	return m.list(gameID, true), nil
}

func (m *MockPlayerRepository) list(gameID int, activeOnly bool) []*player.Player {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*player.Player
	for id := 1; id < m.nextID; id++ {
		p, ok := m.players[id]
		if !ok || p.GameID != gameID {
			continue
		}
		if activeOnly && p.Eliminated {
			continue
		}
		copy := *p
		result = append(result, &copy)
	}
	return result
}

// Save persists a player
func (m *MockPlayerRepository) Save(ctx context.Context, p *player.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.nextID
		m.nextID++
	} else if p.ID >= m.nextID {
		m.nextID = p.ID + 1
	}
	copy := *p
	m.players[p.ID] = &copy
	return nil
}
