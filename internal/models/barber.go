package models

import "time"

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Login        string `gorm:"size:100;uniqueIndex;not null" json:"login"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Active       bool   `gorm:"default:true" json:"active"`
	PhotoURL     string `gorm:"size:255" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
