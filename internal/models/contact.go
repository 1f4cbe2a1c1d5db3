package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ContactForm struct {
	bun.BaseModel `bun:"table:contact_forms"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Phone     string    `bun:"phone,nullzero" json:"phone,omitempty"`
	Email     string    `bun:"email,notnull" json:"email"`
	Message   string    `bun:"message,notnull" json:"message"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type ContactFormRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Phone   string `json:"phone" validate:"omitempty,e164"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}
