package shared

// Result carries the outcome of a domain validation that is expected to fail
// in normal play (not enough money to build, invalid budget split). Callers
// must check OK; these are never raised as errors.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Success returns a passing Result.
func Success() Result {
	return Result{OK: true}
}

// Failure returns a failing Result with a human-readable reason.
func Failure(message string) Result {
	return Result{OK: false, Message: message}
}
