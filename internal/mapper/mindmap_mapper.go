package mapper

import (
	"encoding/json"
	"time"

	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MindMapMapper struct{}

func NewMindMapMapper() *MindMapMapper {
	return &MindMapMapper{}
}

func (m *MindMapMapper) ToEntity(mm *model.MindMap) *entity.MindMap {
	if mm == nil {
		return nil
	}

	var deletedAt *time.Time
	if mm.DeletedAt.Valid {
		t := mm.DeletedAt.Time
		deletedAt = &t
	}

	var root entity.MindMapNode
	if len(mm.Root) > 0 {
		_ = json.Unmarshal(mm.Root, &root)
	}

	return &entity.MindMap{
		Id:        mm.Id,
		CourseId:  mm.CourseId,
		UserId:    mm.UserId,
		Title:     mm.Title,
		Root:      root,
		CreatedAt: mm.CreatedAt,
		DeletedAt: deletedAt,
		IsDeleted: mm.DeletedAt.Valid,
	}
}

func (m *MindMapMapper) ToModel(mm *entity.MindMap) *model.MindMap {
	if mm == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if mm.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *mm.DeletedAt, Valid: true}
	} else if mm.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	raw, _ := json.Marshal(mm.Root)

	return &model.MindMap{
		Id:        mm.Id,
		CourseId:  mm.CourseId,
		UserId:    mm.UserId,
		Title:     mm.Title,
		Root:      datatypes.JSON(raw),
		CreatedAt: mm.CreatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *MindMapMapper) ToEntities(maps []*model.MindMap) []*entity.MindMap {
	entities := make([]*entity.MindMap, len(maps))
	for i, mm := range maps {
		entities[i] = m.ToEntity(mm)
	}
	return entities
}
