package model

import "strings"

// EvaluationContext is the attribute bag condition trees are evaluated
// against. The two top-level namespaces mirror the stored rule language:
// "user.*" resolves into the actor's identity, "context.*" into the
// request-specific enrichment map.
type EvaluationContext struct {
	User    map[string]any
	Context map[string]any
}

// NewEvaluationContext assembles the context for one request: actor
// identity under "user", request params merged with enrichment under
// "context". Later maps win on key collision.
func NewEvaluationContext(actor Actor, params ...map[string]any) *EvaluationContext {
	user := map[string]any{
		"id":         actor.ID,
		"role":       actor.Role,
		"department": actor.Department,
	}
	for k, v := range actor.Attributes {
		user[k] = v
	}

	ctx := make(map[string]any)
	for _, m := range params {
		for k, v := range m {
			ctx[k] = v
		}
	}

	return &EvaluationContext{User: user, Context: ctx}
}

// Set writes one enrichment value into the context namespace.
func (ec *EvaluationContext) Set(key string, value any) {
	if ec.Context == nil {
		ec.Context = make(map[string]any)
	}
	ec.Context[key] = value
}

// Resolve walks a dotted path against the context. The second return is
// false when any segment is absent or a non-map value is traversed into;
// an unresolved path is a non-match, never an error.
func (ec *EvaluationContext) Resolve(path string) (any, bool) {
	segments := strings.Split(path, ".")
	if len(segments) == 0 || segments[0] == "" {
		return nil, false
	}

	var current any
	switch segments[0] {
	case "user":
		current = ec.User
	case "context":
		current = ec.Context
	default:
		return nil, false
	}

	for _, seg := range segments[1:] {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
