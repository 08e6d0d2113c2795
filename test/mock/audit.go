// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/campusforge/aegis/audit"
	"github.com/stretchr/testify/mock"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogDecision(ctx context.Context, record audit.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditService) QueryDecisions(ctx context.Context, from, to time.Time, actorID, resource string) ([]audit.Record, error) {
	args := m.Called(ctx, from, to, actorID, resource)
	return args.Get(0).([]audit.Record), args.Error(1)
}
