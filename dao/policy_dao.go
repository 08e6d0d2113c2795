// dao/policy_dao.go
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	aegis_errors "github.com/campusforge/aegis/errors"
	logger "github.com/campusforge/aegis/logging"
	"github.com/campusforge/aegis/model"
)

// PolicyDAO persists policy rows in the relational store.
type PolicyDAO struct {
	db *gorm.DB
}

func NewPolicyDAO(db *gorm.DB) *PolicyDAO {
	return &PolicyDAO{db: db}
}

// FindForRequest returns every policy for an exact (subject, action,
// resource) triple, in insertion order. Ties on created_at are broken by
// id so the order is stable.
func (dao *PolicyDAO) FindForRequest(ctx context.Context, subject, action, resource string) ([]*model.Policy, error) {
	start := time.Now()

	var policies []*model.Policy
	err := dao.db.WithContext(ctx).
		Where("subject = ? AND action = ? AND resource = ?", subject, action, resource).
		Order("created_at, id").
		Find(&policies).Error
	if err != nil {
		logger.Error("Failed to retrieve policies for request",
			zap.Error(err),
			zap.String("subject", subject),
			zap.String("action", action),
			zap.String("resource", resource))
		return nil, aegis_errors.ErrPolicyLookupFailed
	}

	logger.Debug("Retrieved policies for request",
		zap.Int("count", len(policies)),
		zap.Duration("duration", time.Since(start)))
	return policies, nil
}

func (dao *PolicyDAO) CreatePolicy(ctx context.Context, policy model.Policy) (*model.Policy, error) {
	if policy.ID == "" {
		policy.ID = uuid.NewString()
	}

	if err := dao.db.WithContext(ctx).Create(&policy).Error; err != nil {
		logger.Error("Failed to create policy", zap.Error(err), zap.String("policyID", policy.ID))
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, aegis_errors.ErrPolicyConflict
		}
		return nil, aegis_errors.ErrDatabaseOperation
	}

	logger.Info("Policy created", zap.String("policyID", policy.ID))
	return &policy, nil
}

func (dao *PolicyDAO) UpdatePolicy(ctx context.Context, policy model.Policy) (*model.Policy, error) {
	var existing model.Policy
	err := dao.db.WithContext(ctx).First(&existing, "id = ?", policy.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, aegis_errors.ErrPolicyNotFound
	}
	if err != nil {
		return nil, aegis_errors.ErrDatabaseOperation
	}

	// created_at keeps the original insertion position; an updated policy
	// does not move in evaluation order.
	policy.CreatedAt = existing.CreatedAt
	if err := dao.db.WithContext(ctx).Save(&policy).Error; err != nil {
		logger.Error("Failed to update policy", zap.Error(err), zap.String("policyID", policy.ID))
		return nil, aegis_errors.ErrDatabaseOperation
	}

	logger.Info("Policy updated", zap.String("policyID", policy.ID))
	return &policy, nil
}

func (dao *PolicyDAO) DeletePolicy(ctx context.Context, policyID string) error {
	result := dao.db.WithContext(ctx).Delete(&model.Policy{}, "id = ?", policyID)
	if result.Error != nil {
		logger.Error("Failed to delete policy", zap.Error(result.Error), zap.String("policyID", policyID))
		return aegis_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return aegis_errors.ErrPolicyNotFound
	}

	logger.Info("Policy deleted", zap.String("policyID", policyID))
	return nil
}

func (dao *PolicyDAO) GetPolicy(ctx context.Context, policyID string) (*model.Policy, error) {
	var policy model.Policy
	err := dao.db.WithContext(ctx).First(&policy, "id = ?", policyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, aegis_errors.ErrPolicyNotFound
	}
	if err != nil {
		return nil, aegis_errors.ErrDatabaseOperation
	}
	return &policy, nil
}

func (dao *PolicyDAO) ListPolicies(ctx context.Context, limit, offset int) ([]*model.Policy, error) {
	var policies []*model.Policy
	err := dao.db.WithContext(ctx).
		Order("created_at, id").
		Limit(limit).
		Offset(offset).
		Find(&policies).Error
	if err != nil {
		return nil, aegis_errors.ErrDatabaseOperation
	}
	return policies, nil
}

func (dao *PolicyDAO) SearchPolicies(ctx context.Context, criteria model.PolicySearchCriteria) ([]*model.Policy, error) {
	query := dao.db.WithContext(ctx).Model(&model.Policy{})

	if criteria.Subject != "" {
		query = query.Where("subject = ?", criteria.Subject)
	}
	if criteria.Action != "" {
		query = query.Where("action = ?", criteria.Action)
	}
	if criteria.Resource != "" {
		query = query.Where("resource = ?", criteria.Resource)
	}
	if criteria.Allow != nil {
		query = query.Where("allow = ?", *criteria.Allow)
	}
	if !criteria.FromDate.IsZero() {
		query = query.Where("created_at >= ?", criteria.FromDate)
	}
	if !criteria.ToDate.IsZero() {
		query = query.Where("created_at <= ?", criteria.ToDate)
	}
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}

	var policies []*model.Policy
	if err := query.Order("created_at, id").Find(&policies).Error; err != nil {
		return nil, aegis_errors.ErrDatabaseOperation
	}
	return policies, nil
}
