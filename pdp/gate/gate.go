// pdp/gate/gate.go
package gate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campusforge/aegis/audit"
	logger "github.com/campusforge/aegis/logging"
	pdp_model "github.com/campusforge/aegis/pdp/model"
)

// Resolver reduces an assembled context to a verdict.
type Resolver interface {
	Resolve(ctx context.Context, subject, action, resource string, evalCtx *pdp_model.EvaluationContext) *pdp_model.AccessDecision
}

// AssignmentChecker is the course-assignment collaborator consulted
// during context enrichment.
type AssignmentChecker interface {
	IsAssignedToCourse(ctx context.Context, teacherID, courseID, semesterID string) (bool, error)
}

// Recorder receives one audit record per decision, fire-and-forget.
type Recorder interface {
	Record(record audit.Record)
}

// PolicyGate is the request-facing entry point of the decision engine: it
// assembles the evaluation context, enriches it with collaborator
// lookups, resolves the verdict and writes exactly one audit record per
// call. The audit write never delays or alters the verdict.
type PolicyGate struct {
	resolver    Resolver
	assignments AssignmentChecker
	recorder    Recorder
}

func NewPolicyGate(resolver Resolver, assignments AssignmentChecker, recorder Recorder) *PolicyGate {
	return &PolicyGate{
		resolver:    resolver,
		assignments: assignments,
		recorder:    recorder,
	}
}

// Authorize decides one access request. Denials are returned as values;
// the only way to observe an internal failure is the decision reason, and
// every such failure resolves to a denial.
func (g *PolicyGate) Authorize(ctx context.Context, req *pdp_model.AccessRequest) *pdp_model.AccessDecision {
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()
	}

	evalCtx := pdp_model.NewEvaluationContext(req.Actor, req.Params)

	decision := g.enrich(ctx, req, evalCtx)
	if decision == nil {
		decision = g.resolver.Resolve(ctx, req.Actor.Role, req.Action, req.Resource, evalCtx)
	}

	status := audit.StatusDenied
	if decision.Allowed {
		status = audit.StatusAllowed
	}
	g.recorder.Record(audit.Record{
		Timestamp: req.Timestamp,
		ActorID:   req.Actor.ID,
		Action:    req.Action,
		Resource:  req.Resource,
		TargetID:  req.TargetID(),
		Status:    status,
		Reason:    decision.Reason,
		PolicyID:  decision.PolicyID,
		Origin:    req.Origin,
	})

	return decision
}

// enrich performs the collaborator lookups the stored conditions may
// reference. A failed lookup denies outright rather than evaluating
// against a context missing the attribute. Returns nil when resolution
// should proceed.
func (g *PolicyGate) enrich(ctx context.Context, req *pdp_model.AccessRequest, evalCtx *pdp_model.EvaluationContext) *pdp_model.AccessDecision {
	courseID, courseOK := req.Params["courseId"].(string)
	semesterID, semesterOK := req.Params["semesterId"].(string)
	if !courseOK || !semesterOK {
		return nil
	}

	assigned, err := g.assignments.IsAssignedToCourse(ctx, req.Actor.ID, courseID, semesterID)
	if err != nil {
		logger.Error("Context enrichment failed, denying",
			zap.Error(err),
			zap.String("actorID", req.Actor.ID),
			zap.String("courseID", courseID))
		return pdp_model.Denied(pdp_model.ReasonLookupFailed)
	}

	evalCtx.Set("isAssigned", assigned)
	return nil
}
