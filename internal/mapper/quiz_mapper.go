package mapper

import (
	"encoding/json"
	"time"

	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizMapper struct{}

func NewQuizMapper() *QuizMapper {
	return &QuizMapper{}
}

func (m *QuizMapper) ToEntity(q *model.Quiz) *entity.Quiz {
	if q == nil {
		return nil
	}

	var deletedAt *time.Time
	if q.DeletedAt.Valid {
		t := q.DeletedAt.Time
		deletedAt = &t
	}

	var questions []entity.QuizQuestion
	if len(q.Questions) > 0 {
		_ = json.Unmarshal(q.Questions, &questions)
	}

	return &entity.Quiz{
		Id:        q.Id,
		CourseId:  q.CourseId,
		UserId:    q.UserId,
		Title:     q.Title,
		Questions: questions,
		CreatedAt: q.CreatedAt,
		DeletedAt: deletedAt,
		IsDeleted: q.DeletedAt.Valid,
	}
}

func (m *QuizMapper) ToModel(q *entity.Quiz) *model.Quiz {
	if q == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if q.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *q.DeletedAt, Valid: true}
	} else if q.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	raw, _ := json.Marshal(q.Questions)

	return &model.Quiz{
		Id:        q.Id,
		CourseId:  q.CourseId,
		UserId:    q.UserId,
		Title:     q.Title,
		Questions: datatypes.JSON(raw),
		CreatedAt: q.CreatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *QuizMapper) ToEntities(quizzes []*model.Quiz) []*entity.Quiz {
	entities := make([]*entity.Quiz, len(quizzes))
	for i, q := range quizzes {
		entities[i] = m.ToEntity(q)
	}
	return entities
}

func (m *QuizMapper) AttemptToEntity(a *model.QuizAttempt) *entity.QuizAttempt {
	if a == nil {
		return nil
	}

	var answers []int
	if len(a.Answers) > 0 {
		_ = json.Unmarshal(a.Answers, &answers)
	}

	return &entity.QuizAttempt{
		Id:          a.Id,
		QuizId:      a.QuizId,
		UserId:      a.UserId,
		Answers:     answers,
		Score:       a.Score,
		Total:       a.Total,
		CompletedAt: a.CompletedAt,
	}
}

func (m *QuizMapper) AttemptToModel(a *entity.QuizAttempt) *model.QuizAttempt {
	if a == nil {
		return nil
	}

	raw, _ := json.Marshal(a.Answers)

	return &model.QuizAttempt{
		Id:          a.Id,
		QuizId:      a.QuizId,
		UserId:      a.UserId,
		Answers:     datatypes.JSON(raw),
		Score:       a.Score,
		Total:       a.Total,
		CompletedAt: a.CompletedAt,
	}
}

func (m *QuizMapper) AttemptsToEntities(attempts []*model.QuizAttempt) []*entity.QuizAttempt {
	entities := make([]*entity.QuizAttempt, len(attempts))
	for i, a := range attempts {
		entities[i] = m.AttemptToEntity(a)
	}
	return entities
}
