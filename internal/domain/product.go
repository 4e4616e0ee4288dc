package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name       string    `json:"name" gorm:"not null"`
	Artist     string    `json:"artist" gorm:"not null"`
	CoverImage *string   `json:"coverImage"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
