package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Package is a purchasable ticket tier. Rows are soft-deleted: Delete flips
// Active and the row never leaves the table.
type Package struct {
	bun.BaseModel `bun:"table:packages"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Name         string    `bun:"name,notnull" json:"name"`
	Price        float64   `bun:"price,notnull" json:"price"`
	Tagline      string    `bun:"tagline,nullzero" json:"tagline,omitempty"`
	Features     []string  `bun:"features,type:jsonb" json:"features"`
	DisplayOrder int       `bun:"display_order,notnull,default:0" json:"display_order"`
	Active       bool      `bun:"active,notnull,default:true" json:"active"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

type Speaker struct {
	bun.BaseModel `bun:"table:speakers"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Name         string    `bun:"name,notnull" json:"name"`
	Title        string    `bun:"title,nullzero" json:"title,omitempty"`
	Company      string    `bun:"company,nullzero" json:"company,omitempty"`
	Bio          string    `bun:"bio,nullzero" json:"bio,omitempty"`
	ImageURL     string    `bun:"image_url,nullzero" json:"image_url,omitempty"`
	DisplayOrder int       `bun:"display_order,notnull,default:0" json:"display_order"`
	Active       bool      `bun:"active,notnull,default:true" json:"active"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

// Stat is a headline number shown on the landing page ("500+ attendees").
type Stat struct {
	bun.BaseModel `bun:"table:stats"`

	ID           int64  `bun:"id,pk,autoincrement" json:"id"`
	Label        string `bun:"label,notnull" json:"label"`
	Value        string `bun:"value,notnull" json:"value"`
	Icon         string `bun:"icon,nullzero" json:"icon,omitempty"`
	DisplayOrder int    `bun:"display_order,notnull,default:0" json:"display_order"`
	Active       bool   `bun:"active,notnull,default:true" json:"active"`
}

type PackageRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=100"`
	Price    float64  `json:"price" validate:"required,gt=0"`
	Tagline  string   `json:"tagline"`
	Features []string `json:"features"`
}

type SpeakerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

type StatRequest struct {
	Label string `json:"label" validate:"required"`
	Value string `json:"value" validate:"required"`
	Icon  string `json:"icon"`
}
