package common

import "context"

// Event names emitted to the notification sink.
const (
	EventPlayerJoined = "player_joined"
	EventGameStarted  = "game_started"
	EventTurnEnded    = "turn_ended"
)

// NotificationSink receives best-effort game event notifications. The core
// must tolerate the sink being unavailable: implementations may fail, and
// callers swallow and log the error without failing their own transaction.
type NotificationSink interface {
	Notify(ctx context.Context, event string, payload map[string]interface{}) error
}

// TxManager runs a function inside one storage transaction. It is the
// boundary both atomicity granularities hang off: per computer player in the
// decision pipeline, per whole game turn in the turn engine.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
