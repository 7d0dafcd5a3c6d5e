package entity

import (
	"time"

	"github.com/google/uuid"
)

type MindMapNode struct {
	Label    string        `json:"label"`
	Children []MindMapNode `json:"children,omitempty"`
}

type MindMap struct {
	Id        uuid.UUID
	CourseId  uuid.UUID
	UserId    uuid.UUID
	Title     string
	Root      MindMapNode
	CreatedAt time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
