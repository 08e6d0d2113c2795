package model

import "time"

// Actor is the authenticated identity a decision is taken for.
type Actor struct {
	ID         string         `json:"id"`
	Role       string         `json:"role"`
	Department string         `json:"department,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// AccessRequest is one authorization question: may Actor perform Action on
// Resource, given the request parameters. Params carries request-specific
// values (courseId, semesterId, targetId, ...) that context enrichment and
// condition evaluation may consult.
type AccessRequest struct {
	Actor     Actor          `json:"actor"`
	Action    string         `json:"action"`
	Resource  string         `json:"resource"`
	Params    map[string]any `json:"params,omitempty"`
	Origin    string         `json:"origin,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// TargetID extracts the conventional target identifier from the request
// parameters, if the caller provided one.
func (r *AccessRequest) TargetID() string {
	if r.Params == nil {
		return ""
	}
	if v, ok := r.Params["targetId"].(string); ok {
		return v
	}
	return ""
}
