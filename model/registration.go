// model/registration.go
package model

import "time"

// RegistrationRecord is the single mutable record per (student, semester),
// created at enrollment time. Invariant after every synchronization:
// IsRegistered implies IsPaid.
type RegistrationRecord struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_registration_identity,priority:1" json:"student_id"`
	SemesterID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_registration_identity,priority:2" json:"semester_id"`
	IsPaid       bool      `gorm:"not null;default:false" json:"is_paid"`
	IsRegistered bool      `gorm:"not null;default:false" json:"is_registered"`
	Version      int64     `gorm:"not null;default:0" json:"version"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (RegistrationRecord) TableName() string { return "registration_records" }
