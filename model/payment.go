// model/payment.go
package model

import "time"

// PaymentStatus is the lifecycle state of a ledger row. A pending row may
// be verified or rejected, and a verified row may later be rejected;
// rejected is terminal.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentRejected PaymentStatus = "rejected"
)

// Payment is one row of the append-only payment ledger. Amount is in
// currency minor units. ExternalRef is the channel transaction id and is
// unique per method so the same real-world transfer cannot be counted
// twice.
type Payment struct {
	ID          string        `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID   string        `gorm:"type:uuid;not null;index:idx_payment_ledger,priority:1" json:"student_id"`
	SemesterID  string        `gorm:"type:uuid;not null;index:idx_payment_ledger,priority:2" json:"semester_id"`
	Amount      int64         `gorm:"not null" json:"amount"`
	Status      PaymentStatus `gorm:"type:text;not null;default:'pending';index" json:"status"`
	Method      string        `gorm:"type:text;not null;uniqueIndex:idx_payment_external_ref,priority:1" json:"method"`
	ExternalRef string        `gorm:"type:text;not null;uniqueIndex:idx_payment_external_ref,priority:2" json:"external_ref"`
	StatusNote  string        `gorm:"type:text" json:"status_note,omitempty"`
	CreatedAt   time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
