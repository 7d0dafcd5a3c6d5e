package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Course) TableName() string {
	return "courses"
}

type CourseShare struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Token     string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	ExpiresAt *time.Time ``
	Revoked   bool       `gorm:"default:false"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`

	Course *Course `gorm:"foreignKey:CourseId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (CourseShare) TableName() string {
	return "course_shares"
}
