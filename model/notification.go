// model/notification.go
package model

import "time"

// Notification is a durable per-recipient message row, written in the same
// transaction as the state change it announces. Rows older than the
// configured retention window are removed by a periodic sweep.
type Notification struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID string    `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Kind        string    `gorm:"type:text;not null" json:"kind"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Read        bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
