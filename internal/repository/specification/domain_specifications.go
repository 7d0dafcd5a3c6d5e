package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByCourseID struct {
	CourseID uuid.UUID
}

func (s ByCourseID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("course_id = ?", s.CourseID)
}

type ByCourseIDs struct {
	CourseIDs []uuid.UUID
}

func (s ByCourseIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("course_id IN ?", s.CourseIDs)
}

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByToken struct {
	Token string
}

func (s ByToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token = ?", s.Token)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ReviewDue matches flashcards whose next review is at or before now.
type ReviewDue struct {
	Now time.Time
}

func (s ReviewDue) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("next_review <= ?", s.Now)
}

type Unread struct{}

func (s Unread) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("read = false")
}
