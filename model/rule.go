// model/rule.go
package model

import "strings"

// RuleKind tags the variants of a RuleNode. The set is closed: anything
// else stored in a policy row evaluates as a non-match.
type RuleKind string

const (
	RuleAllOf      RuleKind = "all"
	RuleAnyOf      RuleKind = "any"
	RuleComparison RuleKind = "cmp"
)

// CompareOp is the operator of a comparison leaf.
type CompareOp string

const (
	OpEq  CompareOp = "eq"
	OpNeq CompareOp = "neq"
	OpGt  CompareOp = "gt"
	OpLt  CompareOp = "lt"
	OpIn  CompareOp = "in"
)

// ContextRefSigil prefixes a comparison value that is a dot-path into the
// evaluation context rather than a literal, e.g. "$user.department".
const ContextRefSigil = "$"

// RuleNode is one node of a stored condition tree. Composite kinds
// ("all", "any") use Children; the comparison leaf uses Field/Op/Value.
//
// Field is a dotted path into the evaluation context ("user.department",
// "context.isAssigned"). Value is either a literal or, when it is a string
// prefixed with ContextRefSigil, a second dot-path resolved against the
// same context.
type RuleNode struct {
	Kind     RuleKind   `json:"kind"`
	Children []RuleNode `json:"children,omitempty"`
	Field    string     `json:"field,omitempty"`
	Op       CompareOp  `json:"op,omitempty"`
	Value    any        `json:"value,omitempty"`
}

// AllOf builds a conjunction node. Empty input is vacuously true.
func AllOf(children ...RuleNode) RuleNode {
	return RuleNode{Kind: RuleAllOf, Children: children}
}

// AnyOf builds a disjunction node. Empty input is vacuously false.
func AnyOf(children ...RuleNode) RuleNode {
	return RuleNode{Kind: RuleAnyOf, Children: children}
}

// Compare builds a comparison leaf.
func Compare(field string, op CompareOp, value any) RuleNode {
	return RuleNode{Kind: RuleComparison, Field: field, Op: op, Value: value}
}

// ContextRef reports whether v is a context reference, and if so returns
// the referenced dot-path.
func ContextRef(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, ContextRefSigil) {
		return "", false
	}
	return strings.TrimPrefix(s, ContextRefSigil), true
}
