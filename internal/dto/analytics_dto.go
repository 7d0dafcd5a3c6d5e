package dto

import "github.com/google/uuid"

type CourseAnalyticsResponse struct {
	CourseId       uuid.UUID `json:"course_id"`
	DocumentCount  int       `json:"document_count"`
	ReadyDocuments int       `json:"ready_documents"`
	NoteCount      int       `json:"note_count"`
	FlashcardCount int       `json:"flashcard_count"`
	CardsDue       int       `json:"cards_due"`
	QuizCount      int       `json:"quiz_count"`
	QuizAttempts   int       `json:"quiz_attempts"`
	AvgQuizScore   float64   `json:"avg_quiz_score"`
	ChatSessions   int       `json:"chat_sessions"`
}

type UserSummaryResponse struct {
	CourseCount    int     `json:"course_count"`
	DocumentCount  int     `json:"document_count"`
	NoteCount      int     `json:"note_count"`
	FlashcardCount int     `json:"flashcard_count"`
	ReviewedToday  int     `json:"reviewed_today"`
	DueToday       int     `json:"due_today"`
	QuizAttempts   int     `json:"quiz_attempts"`
	AvgQuizScore   float64 `json:"avg_quiz_score"`
}

type ReviewForecastItem struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ReviewStatsResponse struct {
	TotalCards  int                  `json:"total_cards"`
	DueNow      int                  `json:"due_now"`
	AvgEase     float64              `json:"avg_ease"`
	Forecast    []ReviewForecastItem `json:"forecast"`
	ReviewedNow int                  `json:"reviewed_today"`
}
