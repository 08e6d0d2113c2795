// pdp/engine/condition.go
package engine

import (
	"reflect"

	"github.com/campusforge/aegis/model"
	pdp_model "github.com/campusforge/aegis/pdp/model"
)

// ConditionEvaluator decides whether a stored rule tree holds for a given
// evaluation context. Evaluation is total and fails closed: an unknown
// node kind, an unknown operator, an unresolvable path or an operand of
// the wrong shape all evaluate to false, never to an error.
type ConditionEvaluator struct{}

func NewConditionEvaluator() *ConditionEvaluator {
	return &ConditionEvaluator{}
}

// Evaluate returns whether node holds in ctx.
// AllOf of nothing is vacuously true; AnyOf of nothing is vacuously false.
func (ce *ConditionEvaluator) Evaluate(node model.RuleNode, ctx *pdp_model.EvaluationContext) bool {
	switch node.Kind {
	case model.RuleAllOf:
		for _, child := range node.Children {
			if !ce.Evaluate(child, ctx) {
				return false
			}
		}
		return true
	case model.RuleAnyOf:
		for _, child := range node.Children {
			if ce.Evaluate(child, ctx) {
				return true
			}
		}
		return false
	case model.RuleComparison:
		return ce.evaluateComparison(node, ctx)
	default:
		return false
	}
}

func (ce *ConditionEvaluator) evaluateComparison(node model.RuleNode, ctx *pdp_model.EvaluationContext) bool {
	left, ok := ctx.Resolve(node.Field)
	if !ok {
		return false
	}

	right := node.Value
	if ref, isRef := model.ContextRef(right); isRef {
		right, ok = ctx.Resolve(ref)
		if !ok {
			return false
		}
	}

	switch node.Op {
	case model.OpEq:
		return looseEqual(left, right)
	case model.OpNeq:
		return !looseEqual(left, right)
	case model.OpGt:
		l, r, ok := bothNumeric(left, right)
		return ok && l > r
	case model.OpLt:
		l, r, ok := bothNumeric(left, right)
		return ok && l < r
	case model.OpIn:
		return containedIn(left, right)
	default:
		return false
	}
}

// looseEqual compares numerically when both operands are numbers, so a
// stored JSON float matches an in-memory int. Everything else falls back
// to deep equality.
func looseEqual(a, b any) bool {
	if l, r, ok := bothNumeric(a, b); ok {
		return l == r
	}
	return reflect.DeepEqual(a, b)
}

func bothNumeric(a, b any) (float64, float64, bool) {
	l, lok := asNumber(a)
	r, rok := asNumber(b)
	return l, r, lok && rok
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// containedIn reports whether needle equals an element of haystack.
// The haystack must be a sequence; any other shape is a non-match.
func containedIn(needle, haystack any) bool {
	rv := reflect.ValueOf(haystack)
	if !rv.IsValid() {
		return false
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if looseEqual(needle, rv.Index(i).Interface()) {
			return true
		}
	}
	return false
}
