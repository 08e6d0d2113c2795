// audit/recorder_test.go
package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusforge/aegis/audit"
	"github.com/campusforge/aegis/logging"
)

// channelService hands each logged record to a channel so tests can wait
// for the asynchronous write without sleeping.
type channelService struct {
	logged chan audit.Record
	err    error
	delay  time.Duration
}

func (s *channelService) LogDecision(ctx context.Context, record audit.Record) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.logged <- record
	return s.err
}

func (s *channelService) QueryDecisions(ctx context.Context, from, to time.Time, actorID, resource string) ([]audit.Record, error) {
	return nil, nil
}

func TestRecordReturnsBeforeTheWriteCompletes(t *testing.T) {
	logging.InitTestLogger()
	service := &channelService{logged: make(chan audit.Record, 1), delay: 50 * time.Millisecond}
	recorder := audit.NewRecorder(service, time.Second)

	start := time.Now()
	recorder.Record(audit.Record{ActorID: "stu-1", Action: "view_grades", Resource: "grades"})
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 50*time.Millisecond, "Record must not wait on the sink")

	select {
	case record := <-service.logged:
		assert.Equal(t, "stu-1", record.ActorID)
		assert.False(t, record.Timestamp.IsZero(), "a missing timestamp is filled in")
	case <-time.After(2 * time.Second):
		t.Fatal("audit write never reached the sink")
	}
}

func TestRecordSwallowsSinkFailures(t *testing.T) {
	logging.InitTestLogger()
	service := &channelService{
		logged: make(chan audit.Record, 1),
		err:    errors.New("elasticsearch unavailable"),
	}
	recorder := audit.NewRecorder(service, time.Second)

	// Must not panic and must not surface the failure to the caller.
	recorder.Record(audit.Record{ActorID: "stu-1", Action: "view_grades", Resource: "grades"})

	select {
	case <-service.logged:
	case <-time.After(2 * time.Second):
		t.Fatal("audit write never reached the sink")
	}
}

func TestRecorderDefaultsTheTimeout(t *testing.T) {
	logging.InitTestLogger()
	service := &channelService{logged: make(chan audit.Record, 1)}
	recorder := audit.NewRecorder(service, 0)
	require.NotNil(t, recorder)

	recorder.Record(audit.Record{ActorID: "stu-1"})
	select {
	case <-service.logged:
	case <-time.After(2 * time.Second):
		t.Fatal("audit write never reached the sink")
	}
}
