package service

import (
	"context"
	"time"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/repository/specification"
	"ai-studymate-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAnalyticsService interface {
	Summary(ctx context.Context, userId uuid.UUID) (*dto.UserSummaryResponse, error)
	CourseAnalytics(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) (*dto.CourseAnalyticsResponse, error)
	ReviewStats(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) (*dto.ReviewStatsResponse, error)
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory) IAnalyticsService {
	return &analyticsService{uowFactory: uowFactory}
}

// Summary aggregates across everything the user owns, independent of any
// one course.
func (s *analyticsService) Summary(ctx context.Context, userId uuid.UUID) (*dto.UserSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	owned := specification.OwnedByUser{UserID: userId}

	courseCount, err := uow.CourseRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}
	docCount, err := uow.DocumentRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}
	notes, err := uow.NoteRepository().FindAll(ctx, owned)
	if err != nil {
		return nil, err
	}

	cards, err := uow.FlashcardRepository().FindAll(ctx, owned)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	reviewedToday := 0
	dueToday := 0
	for _, card := range cards {
		if card.LastReviewed != nil && card.LastReviewed.After(today) {
			reviewedToday++
		}
		if !card.NextReview.After(now) {
			dueToday++
		}
	}

	attempts, err := uow.QuizRepository().FindAttempts(ctx, owned)
	if err != nil {
		return nil, err
	}
	scoreSum := 0.0
	scored := 0
	for _, attempt := range attempts {
		if attempt.Total > 0 {
			scoreSum += float64(attempt.Score) / float64(attempt.Total)
			scored++
		}
	}
	avgScore := 0.0
	if scored > 0 {
		avgScore = scoreSum / float64(scored) * 100
	}

	return &dto.UserSummaryResponse{
		CourseCount:    int(courseCount),
		DocumentCount:  int(docCount),
		NoteCount:      len(notes),
		FlashcardCount: len(cards),
		ReviewedToday:  reviewedToday,
		DueToday:       dueToday,
		QuizAttempts:   len(attempts),
		AvgQuizScore:   avgScore,
	}, nil
}

func (s *analyticsService) CourseAnalytics(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) (*dto.CourseAnalyticsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := findOwnedCourse(ctx, uow, userId, courseId)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	byCourse := specification.ByCourseID{CourseID: courseId}

	docCount, err := uow.DocumentRepository().Count(ctx, byCourse)
	if err != nil {
		return nil, err
	}
	readyCount, err := uow.DocumentRepository().Count(ctx, byCourse,
		specification.ByStatus{Status: string(entity.DocumentStatusReady)})
	if err != nil {
		return nil, err
	}

	notes, err := uow.NoteRepository().FindAll(ctx, byCourse)
	if err != nil {
		return nil, err
	}

	cardCount, err := uow.FlashcardRepository().Count(ctx, byCourse)
	if err != nil {
		return nil, err
	}
	dueCount, err := uow.FlashcardRepository().Count(ctx, byCourse,
		specification.ReviewDue{Now: time.Now()})
	if err != nil {
		return nil, err
	}

	quizzes, err := uow.QuizRepository().FindAll(ctx, byCourse)
	if err != nil {
		return nil, err
	}

	attemptCount := 0
	scoreSum := 0.0
	for _, quiz := range quizzes {
		attempts, err := uow.QuizRepository().FindAttempts(ctx,
			specification.FilterBy{Field: "quiz_id", Value: quiz.Id})
		if err != nil {
			return nil, err
		}
		attemptCount += len(attempts)
		for _, attempt := range attempts {
			if attempt.Total > 0 {
				scoreSum += float64(attempt.Score) / float64(attempt.Total)
			}
		}
	}
	avgScore := 0.0
	if attemptCount > 0 {
		avgScore = scoreSum / float64(attemptCount) * 100
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx, byCourse)
	if err != nil {
		return nil, err
	}

	return &dto.CourseAnalyticsResponse{
		CourseId:       courseId,
		DocumentCount:  int(docCount),
		ReadyDocuments: int(readyCount),
		NoteCount:      len(notes),
		FlashcardCount: int(cardCount),
		CardsDue:       int(dueCount),
		QuizCount:      len(quizzes),
		QuizAttempts:   attemptCount,
		AvgQuizScore:   avgScore,
		ChatSessions:   len(sessions),
	}, nil
}

func (s *analyticsService) ReviewStats(ctx context.Context, userId uuid.UUID, courseId uuid.UUID) (*dto.ReviewStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := findOwnedCourse(ctx, uow, userId, courseId)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}

	cards, err := uow.FlashcardRepository().FindAll(ctx,
		specification.ByCourseID{CourseID: courseId})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &dto.ReviewStatsResponse{TotalCards: len(cards)}
	easeSum := 0.0
	forecast := make(map[string]int)

	for _, card := range cards {
		easeSum += card.EaseFactor
		if !card.NextReview.After(now) {
			stats.DueNow++
		}
		if card.LastReviewed != nil && card.LastReviewed.After(today) {
			stats.ReviewedNow++
		}
		// Seven day forecast bucketed by due date; overdue cards land on
		// today.
		due := card.NextReview
		if due.Before(today) {
			due = today
		}
		if due.Before(today.AddDate(0, 0, 7)) {
			forecast[due.Format("2006-01-02")]++
		}
	}

	if len(cards) > 0 {
		stats.AvgEase = easeSum / float64(len(cards))
	}

	stats.Forecast = make([]dto.ReviewForecastItem, 0, 7)
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, i).Format("2006-01-02")
		stats.Forecast = append(stats.Forecast, dto.ReviewForecastItem{
			Date:  day,
			Count: forecast[day],
		})
	}
	return stats, nil
}
