package implementation

import (
	"context"
	"errors"

	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/mapper"
	"ai-studymate-be/internal/model"
	"ai-studymate-be/internal/repository/contract"
	"ai-studymate-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MindMapRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MindMapMapper
}

func NewMindMapRepository(db *gorm.DB) contract.MindMapRepository {
	return &MindMapRepositoryImpl{
		db:     db,
		mapper: mapper.NewMindMapMapper(),
	}
}

func (r *MindMapRepositoryImpl) Create(ctx context.Context, mindMap *entity.MindMap) error {
	m := r.mapper.ToModel(mindMap)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*mindMap = *r.mapper.ToEntity(m)
	return nil
}

func (r *MindMapRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MindMap{}, id).Error
}

func (r *MindMapRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MindMap, error) {
	var m model.MindMap
	query := applySpecifications(r.db.WithContext(ctx), specs)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MindMapRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MindMap, error) {
	var models []*model.MindMap
	query := applySpecifications(r.db.WithContext(ctx), specs)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
