package models

import "time"

// Cliente simples, sem login. Identificado pelo par (email, nome).
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName string `gorm:"size:100;not null" json:"full_name"`
	Email    string `gorm:"size:100;not null;index" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
