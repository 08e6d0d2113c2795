package model

// Decision reason codes surfaced with every verdict.
const (
	ReasonPolicyMatch    = "policy_match"
	ReasonNoPolicyMatch  = "no_policy_matched"
	ReasonNoPolicyExists = "no_policy_exists"
	ReasonPrivilegedRole = "privileged_role_fallback"
	ReasonLookupFailed   = "policy_lookup_failed"
)

// AccessDecision is the typed verdict returned to callers. A denial is a
// value, not an error; transport and validation failures use the regular
// error path instead.
type AccessDecision struct {
	Allowed  bool   `json:"allowed"`
	Reason   string `json:"reason"`
	PolicyID string `json:"policy_id,omitempty"`
}

func Allowed(reason, policyID string) *AccessDecision {
	return &AccessDecision{Allowed: true, Reason: reason, PolicyID: policyID}
}

func Denied(reason string) *AccessDecision {
	return &AccessDecision{Allowed: false, Reason: reason}
}
