package mapper

import (
	"time"

	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/model"

	"gorm.io/gorm"
)

type FlashcardMapper struct{}

func NewFlashcardMapper() *FlashcardMapper {
	return &FlashcardMapper{}
}

func (m *FlashcardMapper) ToEntity(f *model.Flashcard) *entity.Flashcard {
	if f == nil {
		return nil
	}

	var deletedAt *time.Time
	if f.DeletedAt.Valid {
		t := f.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !f.UpdatedAt.IsZero() {
		t := f.UpdatedAt
		updatedAt = &t
	}

	return &entity.Flashcard{
		Id:           f.Id,
		CourseId:     f.CourseId,
		UserId:       f.UserId,
		Front:        f.Front,
		Back:         f.Back,
		EaseFactor:   f.EaseFactor,
		Interval:     f.Interval,
		Repetitions:  f.Repetitions,
		NextReview:   f.NextReview,
		LastReviewed: f.LastReviewed,
		LastQuality:  f.LastQuality,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    f.DeletedAt.Valid,
	}
}

func (m *FlashcardMapper) ToModel(f *entity.Flashcard) *model.Flashcard {
	if f == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if f.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *f.DeletedAt, Valid: true}
	} else if f.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if f.UpdatedAt != nil {
		updatedAt = *f.UpdatedAt
	}

	return &model.Flashcard{
		Id:           f.Id,
		CourseId:     f.CourseId,
		UserId:       f.UserId,
		Front:        f.Front,
		Back:         f.Back,
		EaseFactor:   f.EaseFactor,
		Interval:     f.Interval,
		Repetitions:  f.Repetitions,
		NextReview:   f.NextReview,
		LastReviewed: f.LastReviewed,
		LastQuality:  f.LastQuality,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}
}

func (m *FlashcardMapper) ToEntities(cards []*model.Flashcard) []*entity.Flashcard {
	entities := make([]*entity.Flashcard, len(cards))
	for i, f := range cards {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

func (m *FlashcardMapper) ToModels(cards []*entity.Flashcard) []*model.Flashcard {
	models := make([]*model.Flashcard, len(cards))
	for i, f := range cards {
		models[i] = m.ToModel(f)
	}
	return models
}
