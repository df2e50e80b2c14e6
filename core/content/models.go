package content

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Kind is the category of content object an editable region belongs to.
type Kind string

const (
	KindPage        Kind = "page"
	KindCourse      Kind = "course"
	KindArtCategory Kind = "art-category"
)

func (k Kind) Valid() bool {
	switch k {
	case KindPage, KindCourse, KindArtCategory:
		return true
	}
	return false
}

// Editable fields shared by all kinds. Title and Subtitle hold plain text,
// Content holds markup.
const (
	FieldTitle    = "title"
	FieldSubtitle = "subtitle"
	FieldContent  = "content"
)

type Page struct {
	ID        int         `db:"id" json:"id"`
	Slug      string      `db:"slug" json:"slug"`
	Title     string      `db:"title" json:"title"`
	Subtitle  string      `db:"subtitle" json:"subtitle"`
	Content   string      `db:"content" json:"content"`
	ImagePath null.String `db:"image_path" json:"image_path"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"` // UTC
}

type Course struct {
	ID              int         `db:"id" json:"id"`
	Title           string      `db:"title" json:"title"`
	Subtitle        string      `db:"subtitle" json:"subtitle"`
	Description     string      `db:"description" json:"description"`
	ImagePath       null.String `db:"image_path" json:"image_path"`
	Date            null.Time   `db:"date" json:"date"`
	Location        null.String `db:"location" json:"location"`
	MaxParticipants null.Int    `db:"max_participants" json:"max_participants"`
	IsActive        bool        `db:"is_active" json:"is_active"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"` // UTC
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"` // UTC

	RegistrationCount int `db:"registration_count" json:"registration_count"`
}

// IsFull reports whether the course reached its participant limit.
// A course without a limit is never full.
func (c Course) IsFull() bool {
	return c.MaxParticipants.Valid && c.RegistrationCount >= int(c.MaxParticipants.Int)
}

type Registration struct {
	ID               int         `db:"id" json:"id"`
	CourseID         int         `db:"course_id" json:"course_id"`
	FirstName        string      `db:"first_name" json:"first_name"`
	LastName         string      `db:"last_name" json:"last_name"`
	Phone            string      `db:"phone" json:"phone"`
	Email            null.String `db:"email" json:"email"`
	RegisteredAt     time.Time   `db:"registered_at" json:"registered_at"` // UTC
	ConfirmationSent bool        `db:"confirmation_sent" json:"confirmation_sent"`
}

type ArtCategory struct {
	ID          int         `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Subtitle    string      `db:"subtitle" json:"subtitle"`
	Description string      `db:"description" json:"description"`
	ImagePath   null.String `db:"image_path" json:"image_path"`
	Position    int         `db:"position" json:"position"`
	IsActive    bool        `db:"is_active" json:"is_active"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"` // UTC
}

type ArtImage struct {
	ID         int         `db:"id" json:"id"`
	CategoryID int         `db:"category_id" json:"category_id"`
	ImagePath  string      `db:"image_path" json:"image_path"`
	Caption    null.String `db:"caption" json:"caption"`
	Position   int         `db:"position" json:"position"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"` // UTC
}

type NavItem struct {
	ID       int         `db:"id" json:"id"`
	Title    string      `db:"title" json:"title"`
	Slug     string      `db:"slug" json:"slug"`
	IconPath null.String `db:"icon_path" json:"icon_path"`
	Position int         `db:"position" json:"position"`
	IsActive bool        `db:"is_active" json:"is_active"`
}

// Input payloads

type NewCourse struct {
	Title           string    `json:"title" validate:"required,max=200"`
	Subtitle        string    `json:"subtitle" validate:"max=200"`
	Description     string    `json:"description"`
	Date            null.Time `json:"date"`
	Location        string    `json:"location" validate:"max=255"`
	MaxParticipants null.Int  `json:"max_participants"`
	IsActive        bool      `json:"is_active"`
}

type NewArtCategory struct {
	Title       string `json:"title" validate:"required,max=200"`
	Subtitle    string `json:"subtitle" validate:"max=200"`
	Description string `json:"description"`
	Position    int    `json:"position"`
	IsActive    bool   `json:"is_active"`
}

type NewRegistration struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,phone"`
	Email     string `json:"email" validate:"omitempty,email"`
}
