// Package notification provides the default best-effort event sink.
package notification

import (
	"context"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/application/common"
)

// LogSink implements common.NotificationSink by writing events to the
// context logger. It never fails, which makes it a safe default for
// deployments without an external notifier.
type LogSink struct{}

// NewLogSink creates the logging notification sink
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Notify writes the event to the context logger
func (s *LogSink) Notify(ctx context.Context, event string, payload map[string]interface{}) error {
	metadata := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		metadata[k] = v
	}
	metadata["event"] = event
	common.LoggerFromContext(ctx).Log("info", "game event", metadata)
	return nil
}
