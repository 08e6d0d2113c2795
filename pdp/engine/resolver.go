// pdp/engine/resolver.go
package engine

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/campusforge/aegis/logging"
	"github.com/campusforge/aegis/model"
	pdp_model "github.com/campusforge/aegis/pdp/model"
)

// PolicySource supplies the stored policies for one (subject, action,
// resource) triple, in insertion order. The gorm DAO satisfies this in
// production; tests use an in-memory source.
type PolicySource interface {
	FindForRequest(ctx context.Context, subject, action, resource string) ([]*model.Policy, error)
}

// PolicyResolver reduces the applicable policy set to a verdict.
//
// Resolution order is fixed: policies are consulted in the order the store
// returns them and the first policy whose condition tree matches supplies
// the verdict via its allow flag. An unconditioned policy matches
// outright. If no stored policy matches, the verdict is Denied - except
// when no policy row exists at all for the triple, in which case roles in
// the privileged set are allowed by default. That fallback is the single
// deliberate relaxation of default-deny; it lives in the privileged map
// below and nowhere else.
type PolicyResolver struct {
	source     PolicySource
	evaluator  *ConditionEvaluator
	privileged map[string]struct{}
}

func NewPolicyResolver(source PolicySource, evaluator *ConditionEvaluator, privilegedRoles []string) *PolicyResolver {
	privileged := make(map[string]struct{}, len(privilegedRoles))
	for _, role := range privilegedRoles {
		privileged[role] = struct{}{}
	}
	return &PolicyResolver{
		source:     source,
		evaluator:  evaluator,
		privileged: privileged,
	}
}

// Resolve is deterministic given the same policy set and context, and
// total: a store failure resolves to Denied rather than an error.
func (pr *PolicyResolver) Resolve(ctx context.Context, subject, action, resource string, evalCtx *pdp_model.EvaluationContext) *pdp_model.AccessDecision {
	policies, err := pr.source.FindForRequest(ctx, subject, action, resource)
	if err != nil {
		logger.Error("Policy lookup failed, denying",
			zap.Error(err),
			zap.String("subject", subject),
			zap.String("action", action),
			zap.String("resource", resource))
		return pdp_model.Denied(pdp_model.ReasonLookupFailed)
	}

	if len(policies) == 0 {
		if _, ok := pr.privileged[subject]; ok {
			logger.Info("Privileged-role fallback applied",
				zap.String("role", subject),
				zap.String("action", action),
				zap.String("resource", resource))
			return pdp_model.Allowed(pdp_model.ReasonPrivilegedRole, "")
		}
		return pdp_model.Denied(pdp_model.ReasonNoPolicyExists)
	}

	for _, policy := range policies {
		tree, ok := policy.ConditionTree()
		if !ok {
			// Malformed stored tree: the policy cannot match.
			logger.Warn("Policy has malformed condition tree, skipping",
				zap.String("policyID", policy.ID))
			continue
		}

		if tree == nil || pr.evaluator.Evaluate(*tree, evalCtx) {
			if policy.Allow {
				return pdp_model.Allowed(pdp_model.ReasonPolicyMatch, policy.ID)
			}
			decision := pdp_model.Denied(pdp_model.ReasonPolicyMatch)
			decision.PolicyID = policy.ID
			return decision
		}
	}

	return pdp_model.Denied(pdp_model.ReasonNoPolicyMatch)
}

// IsPrivileged reports whether a role receives the missing-policy
// fallback. Exposed for administrative introspection endpoints.
func (pr *PolicyResolver) IsPrivileged(role string) bool {
	_, ok := pr.privileged[role]
	return ok
}
