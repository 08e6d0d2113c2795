// audit/recorder.go
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	logger "github.com/campusforge/aegis/logging"
)

// Recorder owns the fire-and-forget contract of the decision log: the
// authorization path must never wait on audit persistence and must never
// see an audit failure. Writes run on their own goroutine with a detached
// timeout context; failures are logged and swallowed.
type Recorder struct {
	service Service
	timeout time.Duration
}

func NewRecorder(service Service, timeout time.Duration) *Recorder {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Recorder{service: service, timeout: timeout}
}

// Record schedules one audit write and returns immediately.
func (r *Recorder) Record(record Record) {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.service.LogDecision(ctx, record); err != nil {
			logger.Error("Audit write failed",
				zap.Error(err),
				zap.String("actorID", record.ActorID),
				zap.String("action", record.Action),
				zap.String("resource", record.Resource))
		}
	}()
}
