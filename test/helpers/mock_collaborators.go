package helpers

import (
	"context"
	"sync"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/fleet"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/galaxy"
)

// PassthroughTxManager is a test double for common.TxManager that runs the
// closure without any transaction semantics.
type PassthroughTxManager struct{}

// WithinTx runs fn directly
func (PassthroughTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// RecordingNotificationSink captures emitted events for assertions.
type RecordingNotificationSink struct {
	mu     sync.Mutex
	Events []RecordedEvent
	// Err, when set, is returned from Notify to exercise best-effort paths
	Err error
}

// RecordedEvent is one captured notification.
type RecordedEvent struct {
	Event   string
	Payload map[string]interface{}
}

// Notify records the event
func (s *RecordingNotificationSink) Notify(ctx context.Context, event string, payload map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, RecordedEvent{Event: event, Payload: payload})
	return s.Err
}

// StubOracle is a configurable test double for fleet.Oracle.
type StubOracle struct {
	planets *MockPlanetRepository

	// RefuseAll makes CanReach refuse every request
	RefuseAll bool
	// ExtraDefense is added to every defense prediction
	ExtraDefense float64
}

// NewStubOracle creates an oracle backed by the mock planet repository
func NewStubOracle(planets *MockPlanetRepository) *StubOracle {
	return &StubOracle{planets: planets}
}

// CanReach applies a straight-line range check
func (o *StubOracle) CanReach(f *fleet.Fleet, target *galaxy.Planet) (bool, string) {
	if o.RefuseAll {
		return false, "refused"
	}
	origin, err := o.planets.FindByID(context.Background(), f.CurrentPlanetID)
	if err != nil {
		return false, "unknown origin"
	}
	if origin.Position.DistanceTo(target.Position) > f.Range {
		return false, "out of range"
	}
	return true, ""
}

// PredictDefensePower sums stationed fleet power plus ExtraDefense
func (o *StubOracle) PredictDefensePower(planet *galaxy.Planet, stationed []*fleet.Fleet) float64 {
	power := o.ExtraDefense
	for _, f := range stationed {
		power += float64(f.Power())
	}
	return power
}
