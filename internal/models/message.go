package models

import "time"

// Message is a notification stored for a barber. Nothing is delivered
// through an external channel.
type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Content string    `gorm:"size:1000;not null" json:"content"`
	SentAt  time.Time `gorm:"not null" json:"sent_at"`

	AppointmentID *uint        `gorm:"index" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	RecipientID uint   `gorm:"not null;index" json:"recipient_id"`
	Recipient   Barber `gorm:"foreignKey:RecipientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Read bool   `gorm:"default:false" json:"read"`
	Kind string `gorm:"size:40" json:"kind"`
}
