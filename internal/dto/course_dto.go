package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCourseRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
}

type CreateCourseResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateCourseRequest struct {
	Id          uuid.UUID
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
}

type CourseResponse struct {
	Id            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	DocumentCount int        `json:"document_count"`
	Shared        bool       `json:"shared"` // true when accessed through a share, not owned
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

type CreateShareRequest struct {
	CourseId  uuid.UUID
	ExpiresIn *int `json:"expires_in_hours" validate:"omitempty,min=1,max=8760"`
}

type ShareResponse struct {
	Id        uuid.UUID  `json:"id"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at"`
	Revoked   bool       `json:"revoked"`
	CreatedAt time.Time  `json:"created_at"`
}

type AcceptShareRequest struct {
	Token string `json:"token" validate:"required"`
}
