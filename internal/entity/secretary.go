package entity

import "time"

// Secretary is an administrative user allowed to mutate records.
type Secretary struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"nombre"`
	Surname      string    `gorm:"size:100;not null" json:"apellido"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
}
