// audit/model.go
package audit

import "time"

// DecisionStatus is the recorded outcome of one authorization decision.
type DecisionStatus string

const (
	StatusAllowed DecisionStatus = "allowed"
	StatusDenied  DecisionStatus = "denied"
)

// Record is one appended decision-log entry.
type Record struct {
	Timestamp time.Time      `json:"timestamp"`
	ActorID   string         `json:"actor_id"`
	Action    string         `json:"action"`
	Resource  string         `json:"resource"`
	TargetID  string         `json:"target_id,omitempty"`
	Status    DecisionStatus `json:"status"`
	Reason    string         `json:"reason,omitempty"`
	PolicyID  string         `json:"policy_id,omitempty"`
	Origin    string         `json:"origin,omitempty"`
}
