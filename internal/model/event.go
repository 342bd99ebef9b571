package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          int       `json:"id" db:"id"`
	EventID     uuid.UUID `json:"event_id" db:"event_id"`
	Title       string    `json:"title" db:"title" validate:"required"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description" validate:"required"`
	Overview    string    `json:"overview" db:"overview" validate:"required"`
	Image       string    `json:"image" db:"image" validate:"required"`
	Venue       string    `json:"venue" db:"venue" validate:"required"`
	Location    string    `json:"location" db:"location" validate:"required"`
	Date        string    `json:"date" db:"date" validate:"required"`
	Time        string    `json:"time" db:"time" validate:"required"`
	Mode        string    `json:"mode" db:"mode" validate:"required"`
	Audience    string    `json:"audience" db:"audience" validate:"required"`
	Agenda      []string  `json:"agenda" db:"agenda" validate:"required,min=1"`
	Organizer   string    `json:"organizer" db:"organizer" validate:"required"`
	Tags        []string  `json:"tags" db:"tags" validate:"required,min=1"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateEventParams 是建立活動時由呼叫端提供的原始欄位
type CreateEventParams struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Overview    string   `json:"overview" yaml:"overview"`
	Image       string   `json:"image" yaml:"image"`
	Venue       string   `json:"venue" yaml:"venue"`
	Location    string   `json:"location" yaml:"location"`
	Date        string   `json:"date" yaml:"date"`
	Time        string   `json:"time" yaml:"time"`
	Mode        string   `json:"mode" yaml:"mode"`
	Audience    string   `json:"audience" yaml:"audience"`
	Agenda      []string `json:"agenda" yaml:"agenda"`
	Organizer   string   `json:"organizer" yaml:"organizer"`
	Tags        []string `json:"tags" yaml:"tags"`
}

// UpdateEventParams nil 代表該欄位未修改
type UpdateEventParams struct {
	Title       *string
	Description *string
	Overview    *string
	Image       *string
	Venue       *string
	Location    *string
	Date        *string
	Time        *string
	Mode        *string
	Audience    *string
	Agenda      []string
	Organizer   *string
	Tags        []string
}

func (p CreateEventParams) ToEvent() *Event {
	return &Event{
		Title:       p.Title,
		Description: p.Description,
		Overview:    p.Overview,
		Image:       p.Image,
		Venue:       p.Venue,
		Location:    p.Location,
		Date:        p.Date,
		Time:        p.Time,
		Mode:        p.Mode,
		Audience:    p.Audience,
		Agenda:      p.Agenda,
		Organizer:   p.Organizer,
		Tags:        p.Tags,
	}
}
