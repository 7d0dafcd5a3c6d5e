package dto

import (
	"time"

	"github.com/google/uuid"
)

// LogListResponse uses string for Id because log IDs are content hashes,
// not UUIDs.
type LogListResponse struct {
	Id        string    `json:"id"`
	Level     string    `json:"level"`
	Module    string    `json:"module"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type LogDetailResponse struct {
	LogListResponse
	Details map[string]interface{} `json:"details"`
}

type AdminUserListResponse struct {
	Id          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	CourseCount int       `json:"course_count"`
	CreatedAt   time.Time `json:"created_at"`
}
