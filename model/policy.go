// model/policy.go
package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Policy is one stored authorization rule. Several policies may share the
// same (subject, action, resource) triple; they are consulted in insertion
// order and the first one whose condition tree matches supplies the verdict.
// There is no priority field.
type Policy struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Subject     string         `gorm:"type:text;not null;index:idx_policy_triple,priority:1" json:"subject"` // role name, e.g. "teacher"
	Action      string         `gorm:"type:text;not null;index:idx_policy_triple,priority:2" json:"action"`
	Resource    string         `gorm:"type:text;not null;index:idx_policy_triple,priority:3" json:"resource"`
	Conditions  datatypes.JSON `gorm:"type:jsonb" json:"conditions,omitempty"`
	Allow       bool           `gorm:"not null" json:"allow"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `gorm:"not null;index:idx_policy_triple,priority:4" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Policy) TableName() string { return "policies" }

// ConditionTree decodes the stored rule tree. A nil return with ok=true
// means the policy is unconditioned and matches outright; ok=false means
// the stored shape could not be decoded and the policy must not match.
func (p *Policy) ConditionTree() (*RuleNode, bool) {
	if len(p.Conditions) == 0 || string(p.Conditions) == "null" {
		return nil, true
	}
	var node RuleNode
	if err := json.Unmarshal(p.Conditions, &node); err != nil {
		return nil, false
	}
	return &node, true
}

// SetConditionTree encodes a rule tree into the stored jsonb column.
func (p *Policy) SetConditionTree(node *RuleNode) error {
	if node == nil {
		p.Conditions = nil
		return nil
	}
	raw, err := json.Marshal(node)
	if err != nil {
		return err
	}
	p.Conditions = datatypes.JSON(raw)
	return nil
}

// PolicySearchCriteria filters administrative policy listings.
type PolicySearchCriteria struct {
	Subject  string
	Action   string
	Resource string
	Allow    *bool
	FromDate time.Time
	ToDate   time.Time
	Limit    int
}
