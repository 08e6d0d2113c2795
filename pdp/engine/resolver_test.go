// pdp/engine/resolver_test.go
package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusforge/aegis/logging"
	"github.com/campusforge/aegis/model"
	"github.com/campusforge/aegis/pdp/engine"
	pdp_model "github.com/campusforge/aegis/pdp/model"
)

// stubPolicySource serves a fixed policy list in insertion order.
type stubPolicySource struct {
	policies []*model.Policy
	err      error
}

func (s *stubPolicySource) FindForRequest(ctx context.Context, subject, action, resource string) ([]*model.Policy, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*model.Policy
	for _, p := range s.policies {
		if p.Subject == subject && p.Action == action && p.Resource == resource {
			out = append(out, p)
		}
	}
	return out, nil
}

func mustPolicy(t *testing.T, id, subject, action, resource string, allow bool, tree *model.RuleNode) *model.Policy {
	t.Helper()
	p := &model.Policy{
		ID:       id,
		Subject:  subject,
		Action:   action,
		Resource: resource,
		Allow:    allow,
	}
	require.NoError(t, p.SetConditionTree(tree))
	return p
}

func newResolver(source engine.PolicySource) *engine.PolicyResolver {
	return engine.NewPolicyResolver(source, engine.NewConditionEvaluator(), []string{"admin", "principal"})
}

func studentContext() *pdp_model.EvaluationContext {
	return pdp_model.NewEvaluationContext(pdp_model.Actor{ID: "s-1", Role: "student"})
}

func TestResolveDefaultDeny(t *testing.T) {
	logging.InitTestLogger()

	resolver := newResolver(&stubPolicySource{})

	decision := resolver.Resolve(context.Background(), "student", "download_material", "material", studentContext())
	assert.False(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonNoPolicyExists, decision.Reason)
}

func TestResolvePrivilegedFallback(t *testing.T) {
	logging.InitTestLogger()

	resolver := newResolver(&stubPolicySource{})

	t.Run("PrivilegedRoleAllowedWithoutPolicy", func(t *testing.T) {
		ctx := pdp_model.NewEvaluationContext(pdp_model.Actor{ID: "a-1", Role: "admin"})
		decision := resolver.Resolve(context.Background(), "admin", "delete_notice", "notice", ctx)
		assert.True(t, decision.Allowed)
		assert.Equal(t, pdp_model.ReasonPrivilegedRole, decision.Reason)
	})

	t.Run("FallbackDoesNotOverrideStoredDeny", func(t *testing.T) {
		source := &stubPolicySource{policies: []*model.Policy{
			mustPolicy(t, "p-deny", "admin", "delete_notice", "notice", false, nil),
		}}
		decision := newResolver(source).Resolve(context.Background(), "admin", "delete_notice", "notice",
			pdp_model.NewEvaluationContext(pdp_model.Actor{ID: "a-1", Role: "admin"}))
		assert.False(t, decision.Allowed)
		assert.Equal(t, "p-deny", decision.PolicyID)
	})

	t.Run("SetIsNotBroadened", func(t *testing.T) {
		assert.True(t, resolver.IsPrivileged("admin"))
		assert.True(t, resolver.IsPrivileged("principal"))
		assert.False(t, resolver.IsPrivileged("teacher"))
		assert.False(t, resolver.IsPrivileged("accountant"))
	})
}

func TestResolveFirstMatchWins(t *testing.T) {
	logging.InitTestLogger()

	assigned := model.AllOf(model.Compare("context.isAssigned", model.OpEq, true))

	source := &stubPolicySource{policies: []*model.Policy{
		mustPolicy(t, "p-1", "teacher", "mark_attendance", "attendance", true, &assigned),
		// A later, broader deny must never be reached once p-1 matches.
		mustPolicy(t, "p-2", "teacher", "mark_attendance", "attendance", false, nil),
	}}
	resolver := newResolver(source)

	t.Run("FirstMatchingConditionSuppliesVerdict", func(t *testing.T) {
		ctx := pdp_model.NewEvaluationContext(
			pdp_model.Actor{ID: "t-1", Role: "teacher"},
			map[string]any{"isAssigned": true},
		)
		decision := resolver.Resolve(context.Background(), "teacher", "mark_attendance", "attendance", ctx)
		assert.True(t, decision.Allowed)
		assert.Equal(t, "p-1", decision.PolicyID)
	})

	t.Run("NonMatchFallsThroughToNextPolicy", func(t *testing.T) {
		ctx := pdp_model.NewEvaluationContext(
			pdp_model.Actor{ID: "t-1", Role: "teacher"},
			map[string]any{"isAssigned": false},
		)
		decision := resolver.Resolve(context.Background(), "teacher", "mark_attendance", "attendance", ctx)
		assert.False(t, decision.Allowed)
		assert.Equal(t, "p-2", decision.PolicyID)
	})

	t.Run("UnconditionedPolicyMatchesOutright", func(t *testing.T) {
		source := &stubPolicySource{policies: []*model.Policy{
			mustPolicy(t, "p-open", "student", "read_notice", "notice", true, nil),
		}}
		decision := newResolver(source).Resolve(context.Background(), "student", "read_notice", "notice", studentContext())
		assert.True(t, decision.Allowed)
		assert.Equal(t, "p-open", decision.PolicyID)
	})
}

func TestResolveExhaustedSetDenies(t *testing.T) {
	logging.InitTestLogger()

	guarded := model.AllOf(model.Compare("context.isAssigned", model.OpEq, true))
	source := &stubPolicySource{policies: []*model.Policy{
		mustPolicy(t, "p-1", "teacher", "mark_attendance", "attendance", true, &guarded),
	}}
	resolver := newResolver(source)

	ctx := pdp_model.NewEvaluationContext(pdp_model.Actor{ID: "t-1", Role: "teacher"})
	decision := resolver.Resolve(context.Background(), "teacher", "mark_attendance", "attendance", ctx)
	assert.False(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonNoPolicyMatch, decision.Reason)
}

func TestResolveMalformedConditionIsSkipped(t *testing.T) {
	logging.InitTestLogger()

	broken := mustPolicy(t, "p-broken", "student", "read_notice", "notice", true, nil)
	broken.Conditions = []byte(`{"kind": [`)

	source := &stubPolicySource{policies: []*model.Policy{
		broken,
		mustPolicy(t, "p-good", "student", "read_notice", "notice", true, nil),
	}}

	decision := newResolver(source).Resolve(context.Background(), "student", "read_notice", "notice", studentContext())
	assert.True(t, decision.Allowed)
	assert.Equal(t, "p-good", decision.PolicyID)
}

func TestResolveLookupFailureDenies(t *testing.T) {
	logging.InitTestLogger()

	source := &stubPolicySource{err: errors.New("store unreachable")}
	resolver := newResolver(source)

	// Fails closed even for a privileged role.
	ctx := pdp_model.NewEvaluationContext(pdp_model.Actor{ID: "a-1", Role: "admin"})
	decision := resolver.Resolve(context.Background(), "admin", "delete_notice", "notice", ctx)
	assert.False(t, decision.Allowed)
	assert.Equal(t, pdp_model.ReasonLookupFailed, decision.Reason)
}

func TestResolveIsDeterministic(t *testing.T) {
	logging.InitTestLogger()

	assigned := model.AllOf(model.Compare("context.isAssigned", model.OpEq, true))
	source := &stubPolicySource{policies: []*model.Policy{
		mustPolicy(t, "p-1", "teacher", "mark_attendance", "attendance", true, &assigned),
		mustPolicy(t, "p-2", "teacher", "mark_attendance", "attendance", false, nil),
	}}
	resolver := newResolver(source)

	ctx := pdp_model.NewEvaluationContext(
		pdp_model.Actor{ID: "t-1", Role: "teacher"},
		map[string]any{"isAssigned": true},
	)

	first := resolver.Resolve(context.Background(), "teacher", "mark_attendance", "attendance", ctx)
	for i := 0; i < 50; i++ {
		again := resolver.Resolve(context.Background(), "teacher", "mark_attendance", "attendance", ctx)
		assert.Equal(t, first, again)
	}
}
