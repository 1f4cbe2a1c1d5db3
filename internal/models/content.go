package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SiteContent holds one editable page section. ContentData is schema-less:
// the admin panel stores whatever shape the section needs and consumers
// validate only the keys they read.
type SiteContent struct {
	bun.BaseModel `bun:"table:site_content"`

	ID          int64                  `bun:"id,pk,autoincrement" json:"id"`
	Section     string                 `bun:"section,notnull,unique" json:"section"`
	Title       string                 `bun:"title,nullzero" json:"title,omitempty"`
	Subtitle    string                 `bun:"subtitle,nullzero" json:"subtitle,omitempty"`
	Description string                 `bun:"description,nullzero" json:"description,omitempty"`
	ContentData map[string]interface{} `bun:"content_data,type:jsonb" json:"content_data,omitempty"`
	UpdatedAt   time.Time              `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

type ContactInfo struct {
	bun.BaseModel `bun:"table:contact_info"`

	ID       int64                  `bun:"id,pk,autoincrement" json:"id"`
	Section  string                 `bun:"section,notnull,unique" json:"section"`
	Phones   []string               `bun:"phones,type:jsonb" json:"phones"`
	Email    string                 `bun:"email,nullzero" json:"email,omitempty"`
	Location map[string]interface{} `bun:"location,type:jsonb" json:"location,omitempty"`
}

// Event is the headline event shown on the landing page. One row per section,
// practically just "main".
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Section     string    `bun:"section,notnull,unique" json:"section"`
	Title       string    `bun:"title,notnull" json:"title"`
	Subtitle    string    `bun:"subtitle,nullzero" json:"subtitle,omitempty"`
	EventDate   string    `bun:"event_date,nullzero" json:"event_date,omitempty"`
	Venue       string    `bun:"venue,nullzero" json:"venue,omitempty"`
	City        string    `bun:"city,nullzero" json:"city,omitempty"`
	Description string    `bun:"description,nullzero" json:"description,omitempty"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

type SiteContentRequest struct {
	Section     string                 `json:"section" validate:"required"`
	Title       string                 `json:"title"`
	Subtitle    string                 `json:"subtitle"`
	Description string                 `json:"description"`
	ContentData map[string]interface{} `json:"content_data"`
}

type ContactInfoRequest struct {
	Phones   []string               `json:"phones"`
	Email    string                 `json:"email" validate:"omitempty,email"`
	Location map[string]interface{} `json:"location"`
}

type EventRequest struct {
	Title       string `json:"title" validate:"required"`
	Subtitle    string `json:"subtitle"`
	EventDate   string `json:"event_date"`
	Venue       string `json:"venue"`
	City        string `json:"city"`
	Description string `json:"description"`
}

// DefaultEvent is what public reads return before an admin has saved anything,
// so the front end always has renderable data.
func DefaultEvent() Event {
	return Event{
		Section:  "main",
		Title:    "Summit 2026",
		Subtitle: "The annual product engineering conference",
		Venue:    "TBA",
		City:     "TBA",
	}
}

func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		Section:  "main",
		Phones:   []string{},
		Location: map[string]interface{}{},
	}
}
