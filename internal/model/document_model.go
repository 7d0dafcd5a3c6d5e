package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	DisplayName string         `gorm:"type:varchar(255);not null"`
	SourceType  string         `gorm:"type:varchar(20);not null"`
	SourceRef   string         `gorm:"type:text"`
	RawText     string         `gorm:"type:text"`
	PageCount   int            `gorm:"default:0"`
	Status      string         `gorm:"type:varchar(20);not null;default:'pending';index"`
	StatusError string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
