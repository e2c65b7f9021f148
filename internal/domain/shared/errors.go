package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// PreconditionError signals that an operation was invoked against an entity
// in the wrong state (e.g. processing an AI turn for a human player, starting
// an already-running game). It is expected to be caught at the orchestration
// boundary and translated into a user-facing message.
type PreconditionError struct {
	*DomainError
}

func NewPreconditionError(format string, args ...interface{}) *PreconditionError {
	return &PreconditionError{DomainError: &DomainError{Message: fmt.Sprintf(format, args...)}}
}

// IsPrecondition reports whether err is a precondition violation.
func IsPrecondition(err error) bool {
	_, ok := err.(*PreconditionError)
	return ok
}

// Game-related errors

type GameError struct {
	*DomainError
}

func NewGameError(message string) *GameError {
	return &GameError{DomainError: &DomainError{Message: message}}
}

// Player-related errors

type PlayerError struct {
	*DomainError
}

func NewPlayerError(message string) *PlayerError {
	return &PlayerError{DomainError: &DomainError{Message: message}}
}

type InsufficientResourcesError struct {
	*PlayerError
	Required  int
	Available int
}

func NewInsufficientResourcesError(resource string, required, available int) *InsufficientResourcesError {
	return &InsufficientResourcesError{
		PlayerError: NewPlayerError(fmt.Sprintf("insufficient %s: need %d, have %d", resource, required, available)),
		Required:    required,
		Available:   available,
	}
}

// Planet-related errors

type PlanetError struct {
	*DomainError
}

func NewPlanetError(message string) *PlanetError {
	return &PlanetError{DomainError: &DomainError{Message: message}}
}

// Fleet-related errors

type FleetError struct {
	*DomainError
}

func NewFleetError(message string) *FleetError {
	return &FleetError{DomainError: &DomainError{Message: message}}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
