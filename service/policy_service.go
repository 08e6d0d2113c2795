package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/campusforge/aegis/dao"
	aegis_errors "github.com/campusforge/aegis/errors"
	logger "github.com/campusforge/aegis/logging"
	"github.com/campusforge/aegis/model"
	"github.com/campusforge/aegis/util"
)

// IPolicyService defines the interface for policy operations
type IPolicyService interface {
	CreatePolicy(ctx context.Context, policy model.Policy, creatorID string) (*model.Policy, error)
	UpdatePolicy(ctx context.Context, policy model.Policy, updaterID string) (*model.Policy, error)
	DeletePolicy(ctx context.Context, policyID string, deleterID string) error
	GetPolicy(ctx context.Context, policyID string) (*model.Policy, error)
	ListPolicies(ctx context.Context, limit int, offset int) ([]*model.Policy, error)
	SearchPolicies(ctx context.Context, criteria model.PolicySearchCriteria) ([]*model.Policy, error)
	BulkCreatePolicies(ctx context.Context, policies []model.Policy, creatorID string) ([]string, error)
}

// PolicyService handles business logic for policy administration. The
// decision path does not pass through here; it reads the store directly
// so a decision never evaluates a half-written policy from cache.
type PolicyService struct {
	policyDAO       *dao.PolicyDAO
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IPolicyService = &PolicyService{}

// NewPolicyService creates a new instance of PolicyService
func NewPolicyService(policyDAO *dao.PolicyDAO, validationUtil *util.ValidationUtil, cacheService *util.CacheService, notificationSvc *util.NotificationService, eventBus *util.EventBus) *PolicyService {
	service := &PolicyService{
		policyDAO:       policyDAO,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	// Set up event subscriptions
	eventBus.Subscribe("policy.created", service.handlePolicyChanged)
	eventBus.Subscribe("policy.updated", service.handlePolicyChanged)
	eventBus.Subscribe("policy.deleted", service.handlePolicyChanged)

	return service
}

func (s *PolicyService) handlePolicyChanged(ctx context.Context, event util.Event) error {
	policy, ok := event.Payload.(model.Policy)
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	changeType := event.Type[len("policy."):]
	if err := s.notificationSvc.NotifyPolicyChange(ctx, changeType, policy); err != nil {
		logger.Warn("Failed to send policy change notification",
			zap.Error(err), zap.String("policyID", policy.ID))
	}
	return nil
}

// CreatePolicy creates a new policy row
func (s *PolicyService) CreatePolicy(ctx context.Context, policy model.Policy, creatorID string) (*model.Policy, error) {
	if err := s.validationUtil.ValidatePolicy(policy); err != nil {
		return nil, fmt.Errorf("%w: %v", aegis_errors.ErrInvalidPolicyData, err)
	}

	createdPolicy, err := s.policyDAO.CreatePolicy(ctx, policy)
	if err != nil {
		logger.Error("Error creating policy", zap.Error(err), zap.String("creatorID", creatorID))
		return nil, err
	}

	if err := s.cacheService.SetPolicy(ctx, *createdPolicy); err != nil {
		logger.Warn("Failed to cache policy", zap.Error(err), zap.String("policyID", createdPolicy.ID))
	}

	s.eventBus.Publish(ctx, "policy.created", *createdPolicy)
	return createdPolicy, nil
}

// UpdatePolicy updates an existing policy
func (s *PolicyService) UpdatePolicy(ctx context.Context, policy model.Policy, updaterID string) (*model.Policy, error) {
	if err := s.validationUtil.ValidatePolicy(policy); err != nil {
		return nil, fmt.Errorf("%w: %v", aegis_errors.ErrInvalidPolicyData, err)
	}

	updatedPolicy, err := s.policyDAO.UpdatePolicy(ctx, policy)
	if err != nil {
		if errors.Is(err, aegis_errors.ErrPolicyNotFound) {
			return nil, aegis_errors.ErrPolicyNotFound
		}
		logger.Error("Error updating policy", zap.Error(err), zap.String("policyID", policy.ID))
		return nil, err
	}

	if err := s.cacheService.SetPolicy(ctx, *updatedPolicy); err != nil {
		logger.Warn("Failed to cache policy", zap.Error(err), zap.String("policyID", updatedPolicy.ID))
	}

	s.eventBus.Publish(ctx, "policy.updated", *updatedPolicy)
	return updatedPolicy, nil
}

// DeletePolicy deletes a policy
func (s *PolicyService) DeletePolicy(ctx context.Context, policyID string, deleterID string) error {
	policy, err := s.policyDAO.GetPolicy(ctx, policyID)
	if err != nil {
		return err
	}

	if err := s.policyDAO.DeletePolicy(ctx, policyID); err != nil {
		logger.Error("Error deleting policy", zap.Error(err), zap.String("policyID", policyID))
		return err
	}

	if err := s.cacheService.DeletePolicy(ctx, policyID); err != nil {
		logger.Warn("Failed to evict cached policy", zap.Error(err), zap.String("policyID", policyID))
	}

	s.eventBus.Publish(ctx, "policy.deleted", *policy)
	return nil
}

// GetPolicy retrieves a policy, cache first
func (s *PolicyService) GetPolicy(ctx context.Context, policyID string) (*model.Policy, error) {
	if cached, err := s.cacheService.GetPolicy(ctx, policyID); err == nil && cached != nil {
		return cached, nil
	}

	policy, err := s.policyDAO.GetPolicy(ctx, policyID)
	if err != nil {
		if errors.Is(err, aegis_errors.ErrPolicyNotFound) {
			return nil, aegis_errors.ErrPolicyNotFound
		}
		logger.Error("Error retrieving policy", zap.Error(err), zap.String("policyID", policyID))
		return nil, aegis_errors.ErrInternalServer
	}

	if err := s.cacheService.SetPolicy(ctx, *policy); err != nil {
		logger.Warn("Failed to cache policy", zap.Error(err), zap.String("policyID", policyID))
	}

	return policy, nil
}

// ListPolicies retrieves all policies, possibly with pagination
func (s *PolicyService) ListPolicies(ctx context.Context, limit int, offset int) ([]*model.Policy, error) {
	policies, err := s.policyDAO.ListPolicies(ctx, limit, offset)
	if err != nil {
		logger.Error("Error listing policies", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	return policies, nil
}

// SearchPolicies searches for policies based on given criteria
func (s *PolicyService) SearchPolicies(ctx context.Context, criteria model.PolicySearchCriteria) ([]*model.Policy, error) {
	policies, err := s.policyDAO.SearchPolicies(ctx, criteria)
	if err != nil {
		logger.Error("Error searching policies", zap.Error(err), zap.Any("criteria", criteria))
		return nil, fmt.Errorf("failed to search policies: %w", err)
	}

	return policies, nil
}

// BulkCreatePolicies creates multiple policies in parallel
func (s *PolicyService) BulkCreatePolicies(ctx context.Context, policies []model.Policy, creatorID string) ([]string, error) {
	g, ctx := errgroup.WithContext(ctx)
	policyIDs := make([]string, len(policies))

	// Limit concurrency to avoid overwhelming the store
	semaphore := make(chan struct{}, 10)

	for i, policy := range policies {
		i, policy := i, policy
		g.Go(func() error {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			createdPolicy, err := s.CreatePolicy(ctx, policy, creatorID)
			if err != nil {
				return err
			}
			policyIDs[i] = createdPolicy.ID
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Error in bulk create policies", zap.Error(err), zap.String("creatorID", creatorID))
		return nil, fmt.Errorf("failed to bulk create policies: %w", err)
	}

	logger.Info("Bulk create policies completed", zap.Int("count", len(policyIDs)), zap.String("creatorID", creatorID))
	return policyIDs, nil
}
