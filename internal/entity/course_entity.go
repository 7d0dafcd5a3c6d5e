package entity

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	Id          uuid.UUID
	Name        string
	Description string
	UserId      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

// CourseShare grants read access to a course through an unguessable token.
type CourseShare struct {
	Id        uuid.UUID
	CourseId  uuid.UUID
	Token     string
	CreatedBy uuid.UUID
	ExpiresAt *time.Time
	Revoked   bool
	CreatedAt time.Time
}
