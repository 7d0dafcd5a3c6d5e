package mapper

import (
	"time"

	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/model"

	"gorm.io/gorm"
)

type CourseMapper struct{}

func NewCourseMapper() *CourseMapper {
	return &CourseMapper{}
}

func (m *CourseMapper) ToEntity(c *model.Course) *entity.Course {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Course{
		Id:          c.Id,
		Name:        c.Name,
		Description: c.Description,
		UserId:      c.UserId,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   c.DeletedAt.Valid,
	}
}

func (m *CourseMapper) ToModel(c *entity.Course) *model.Course {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Course{
		Id:          c.Id,
		Name:        c.Name,
		Description: c.Description,
		UserId:      c.UserId,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *CourseMapper) ToEntities(courses []*model.Course) []*entity.Course {
	entities := make([]*entity.Course, len(courses))
	for i, c := range courses {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *CourseMapper) ShareToEntity(s *model.CourseShare) *entity.CourseShare {
	if s == nil {
		return nil
	}
	return &entity.CourseShare{
		Id:        s.Id,
		CourseId:  s.CourseId,
		Token:     s.Token,
		CreatedBy: s.CreatedBy,
		ExpiresAt: s.ExpiresAt,
		Revoked:   s.Revoked,
		CreatedAt: s.CreatedAt,
	}
}

func (m *CourseMapper) ShareToModel(s *entity.CourseShare) *model.CourseShare {
	if s == nil {
		return nil
	}
	return &model.CourseShare{
		Id:        s.Id,
		CourseId:  s.CourseId,
		Token:     s.Token,
		CreatedBy: s.CreatedBy,
		ExpiresAt: s.ExpiresAt,
		Revoked:   s.Revoked,
		CreatedAt: s.CreatedAt,
	}
}

func (m *CourseMapper) SharesToEntities(shares []*model.CourseShare) []*entity.CourseShare {
	entities := make([]*entity.CourseShare, len(shares))
	for i, s := range shares {
		entities[i] = m.ShareToEntity(s)
	}
	return entities
}
