// pdp/engine/condition_test.go
package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusforge/aegis/model"
	"github.com/campusforge/aegis/pdp/engine"
	pdp_model "github.com/campusforge/aegis/pdp/model"
)

func teacherContext() *pdp_model.EvaluationContext {
	return pdp_model.NewEvaluationContext(
		pdp_model.Actor{
			ID:         "t-1",
			Role:       "teacher",
			Department: "physics",
		},
		map[string]any{
			"courseDepartment": "physics",
			"isAssigned":       true,
			"allowedMethods":   []any{"bank", "mobile"},
			"attempts":         float64(3),
		},
	)
}

func TestEvaluateCompositeNodes(t *testing.T) {
	ce := engine.NewConditionEvaluator()
	ctx := teacherContext()

	t.Run("EmptyAllOfIsVacuouslyTrue", func(t *testing.T) {
		assert.True(t, ce.Evaluate(model.AllOf(), ctx))
	})

	t.Run("EmptyAnyOfIsVacuouslyFalse", func(t *testing.T) {
		assert.False(t, ce.Evaluate(model.AnyOf(), ctx))
	})

	t.Run("AllOfRequiresEveryChild", func(t *testing.T) {
		node := model.AllOf(
			model.Compare("user.role", model.OpEq, "teacher"),
			model.Compare("context.isAssigned", model.OpEq, true),
		)
		assert.True(t, ce.Evaluate(node, ctx))

		node.Children = append(node.Children, model.Compare("user.role", model.OpEq, "student"))
		assert.False(t, ce.Evaluate(node, ctx))
	})

	t.Run("AnyOfNeedsOneChild", func(t *testing.T) {
		node := model.AnyOf(
			model.Compare("user.role", model.OpEq, "student"),
			model.Compare("user.department", model.OpEq, "physics"),
		)
		assert.True(t, ce.Evaluate(node, ctx))
	})

	t.Run("NestedTrees", func(t *testing.T) {
		node := model.AllOf(
			model.Compare("user.role", model.OpEq, "teacher"),
			model.AnyOf(
				model.Compare("context.isAssigned", model.OpEq, true),
				model.Compare("user.role", model.OpEq, "admin"),
			),
		)
		assert.True(t, ce.Evaluate(node, ctx))
	})

	t.Run("UnknownKindIsFalse", func(t *testing.T) {
		assert.False(t, ce.Evaluate(model.RuleNode{Kind: "xor"}, ctx))
	})
}

func TestEvaluateComparisons(t *testing.T) {
	ce := engine.NewConditionEvaluator()
	ctx := teacherContext()

	tests := []struct {
		name string
		node model.RuleNode
		want bool
	}{
		{"EqMatch", model.Compare("user.role", model.OpEq, "teacher"), true},
		{"EqMismatch", model.Compare("user.role", model.OpEq, "student"), false},
		{"NeqMatch", model.Compare("user.role", model.OpNeq, "student"), true},
		{"MissingFieldIsFalse", model.Compare("user.salary", model.OpEq, 1000), false},
		{"MissingSegmentIsFalse", model.Compare("context.course.id", model.OpEq, "c-1"), false},
		{"MissingNamespaceIsFalse", model.Compare("environment.ip", model.OpEq, "10.0.0.1"), false},
		{"NeqOnMissingFieldIsFalse", model.Compare("user.salary", model.OpNeq, 1000), false},
		{"GtNumeric", model.Compare("context.attempts", model.OpGt, 2), true},
		{"LtNumeric", model.Compare("context.attempts", model.OpLt, 2), false},
		{"GtOnNonNumericIsFalse", model.Compare("user.role", model.OpGt, 2), false},
		{"LtOnNonNumericValueIsFalse", model.Compare("context.attempts", model.OpLt, "ten"), false},
		{"NumericEqAcrossTypes", model.Compare("context.attempts", model.OpEq, 3), true},
		{"InMatch", model.Compare("user.role", model.OpIn, []any{"student", "teacher"}), true},
		{"InMismatch", model.Compare("user.role", model.OpIn, []any{"student", "admin"}), false},
		{"InOnNonSequenceIsFalse", model.Compare("user.role", model.OpIn, "teacher"), false},
		{"UnknownOperatorIsFalse", model.Compare("user.role", "matches", "teacher"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ce.Evaluate(tt.node, ctx))
		})
	}
}

func TestEvaluateContextRef(t *testing.T) {
	ce := engine.NewConditionEvaluator()
	ctx := teacherContext()

	t.Run("RefResolvesAgainstContext", func(t *testing.T) {
		// Compares the course's department with the acting user's, not
		// with a hard-coded string.
		node := model.Compare("context.courseDepartment", model.OpEq, "$user.department")
		assert.True(t, ce.Evaluate(node, ctx))
	})

	t.Run("RefMismatch", func(t *testing.T) {
		node := model.Compare("context.courseDepartment", model.OpNeq, "$user.department")
		assert.False(t, ce.Evaluate(node, ctx))
	})

	t.Run("DanglingRefIsFalse", func(t *testing.T) {
		node := model.Compare("context.courseDepartment", model.OpEq, "$user.faculty")
		assert.False(t, ce.Evaluate(node, ctx))
	})

	t.Run("RefInSequence", func(t *testing.T) {
		node := model.Compare("user.role", model.OpIn, "$context.allowedMethods")
		assert.False(t, ce.Evaluate(node, ctx))
	})
}
