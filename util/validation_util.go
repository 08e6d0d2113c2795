// util/validation_util.go

package util

import (
	"fmt"

	aegis_errors "github.com/campusforge/aegis/errors"
	"github.com/campusforge/aegis/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidatePolicy(policy model.Policy) error {
	if policy.Subject == "" {
		return fmt.Errorf("policy subject cannot be empty")
	}
	if policy.Action == "" {
		return fmt.Errorf("policy action cannot be empty")
	}
	if policy.Resource == "" {
		return fmt.Errorf("policy resource cannot be empty")
	}
	if tree, ok := policy.ConditionTree(); !ok {
		return aegis_errors.ErrInvalidConditionShape
	} else if tree != nil {
		if err := v.validateRuleNode(*tree); err != nil {
			return err
		}
	}
	// Add more validation rules as needed
	return nil
}

func (v *ValidationUtil) validateRuleNode(node model.RuleNode) error {
	switch node.Kind {
	case model.RuleAllOf, model.RuleAnyOf:
		for _, child := range node.Children {
			if err := v.validateRuleNode(child); err != nil {
				return err
			}
		}
		return nil
	case model.RuleComparison:
		if node.Field == "" {
			return fmt.Errorf("comparison field cannot be empty")
		}
		switch node.Op {
		case model.OpEq, model.OpNeq, model.OpGt, model.OpLt, model.OpIn:
			return nil
		default:
			return fmt.Errorf("unknown comparison operator: %s", node.Op)
		}
	default:
		return fmt.Errorf("unknown rule kind: %s", node.Kind)
	}
}

func (v *ValidationUtil) ValidatePayment(payment model.Payment) error {
	if payment.StudentID == "" {
		return fmt.Errorf("payment student ID cannot be empty")
	}
	if payment.SemesterID == "" {
		return fmt.Errorf("payment semester ID cannot be empty")
	}
	if payment.Amount <= 0 {
		return fmt.Errorf("payment amount must be positive")
	}
	if payment.Method == "" {
		return fmt.Errorf("payment method cannot be empty")
	}
	if payment.ExternalRef == "" {
		return fmt.Errorf("payment external reference cannot be empty")
	}
	return nil
}
