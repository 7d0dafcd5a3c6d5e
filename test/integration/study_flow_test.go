package integration

import (
	"context"
	"testing"
	"time"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/repository"
	"ai-studymate-be/internal/repository/specification"
	"ai-studymate-be/internal/repository/unitofwork"
	"ai-studymate-be/internal/service"
	"ai-studymate-be/pkg/chunker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatEmbedder returns a constant vector sized for the embeddings column.
type flatEmbedder struct{}

func (flatEmbedder) Embed(ctx context.Context, text, taskType string) ([]float32, error) {
	v := make([]float32, 768)
	v[0] = 1
	return v, nil
}

func seedTestUser(t *testing.T, ctx context.Context, uowFactory unitofwork.RepositoryFactory, prefix string) uuid.UUID {
	t.Helper()
	userId := uuid.New()
	err := uowFactory.NewUnitOfWork(ctx).UserRepository().Create(ctx, &entity.User{
		Id:        userId,
		Email:     prefix + "-" + userId.String()[:8] + "@example.com",
		FullName:  "Test User",
		Role:      entity.UserRoleUser,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return userId
}

func TestCourseShareLifecycle(t *testing.T) {
	uowFactory := connect(t)
	ctx := context.Background()

	userId := seedTestUser(t, ctx, uowFactory, "share")
	courseService := service.NewCourseService(uowFactory, repository.NewGormIndexStore(uowFactory))

	created, err := courseService.Create(ctx, userId, &dto.CreateCourseRequest{Name: "Biology 101"})
	require.NoError(t, err)
	defer courseService.Delete(ctx, userId, created.Id)

	share, err := courseService.CreateShare(ctx, userId, &dto.CreateShareRequest{CourseId: created.Id})
	require.NoError(t, err)
	require.NotNil(t, share)
	assert.NotEmpty(t, share.Token)

	// The token resolves to a read-only view of the course.
	resolved, err := courseService.ResolveShare(ctx, share.Token)
	require.NoError(t, err)
	assert.Equal(t, created.Id, resolved.Id)
	assert.True(t, resolved.Shared)

	// Strangers cannot revoke someone else's share.
	err = courseService.RevokeShare(ctx, uuid.New(), share.Id)
	assert.ErrorIs(t, err, service.ErrForbidden)

	// The owner can, and the token stops resolving right away even
	// though the resolve above primed the cache.
	err = courseService.RevokeShare(ctx, userId, share.Id)
	require.NoError(t, err)

	_, err = courseService.ResolveShare(ctx, share.Token)
	assert.Error(t, err)
}

func TestFlashcardReviewFlow(t *testing.T) {
	uowFactory := connect(t)
	ctx := context.Background()

	userId := seedTestUser(t, ctx, uowFactory, "review")
	courseService := service.NewCourseService(uowFactory, repository.NewGormIndexStore(uowFactory))
	cardService := service.NewFlashcardService(uowFactory, nil, nil)

	course, err := courseService.Create(ctx, userId, &dto.CreateCourseRequest{Name: "Chemistry"})
	require.NoError(t, err)
	defer courseService.Delete(ctx, userId, course.Id)

	card, err := cardService.Create(ctx, userId, &dto.CreateFlashcardRequest{
		CourseId: course.Id,
		Front:    "Atomic number of carbon?",
		Back:     "6",
	})
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, 2.5, card.EaseFactor)

	// A fresh card is due immediately.
	due, err := cardService.Due(ctx, userId, course.Id)
	require.NoError(t, err)
	require.Len(t, due, 1)

	// A good answer pushes the review a day out.
	reviewed, err := cardService.Review(ctx, userId, &dto.ReviewFlashcardRequest{Id: card.Id, Quality: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, reviewed.Interval)
	assert.Equal(t, 1, reviewed.Repetitions)
	assert.True(t, reviewed.NextReview.After(time.Now()))

	due, err = cardService.Due(ctx, userId, course.Id)
	require.NoError(t, err)
	assert.Empty(t, due)

	// A failed answer resets the repetition streak.
	reviewed, err = cardService.Review(ctx, userId, &dto.ReviewFlashcardRequest{Id: card.Id, Quality: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, reviewed.Repetitions)
	assert.Equal(t, 1, reviewed.Interval)

	// Other users cannot see or review the card.
	stranger, err := cardService.Review(ctx, uuid.New(), &dto.ReviewFlashcardRequest{Id: card.Id, Quality: 5})
	require.NoError(t, err)
	assert.Nil(t, stranger)
}

func TestUserSummaryAggregates(t *testing.T) {
	uowFactory := connect(t)
	ctx := context.Background()

	userId := seedTestUser(t, ctx, uowFactory, "summary")
	courseService := service.NewCourseService(uowFactory, repository.NewGormIndexStore(uowFactory))
	cardService := service.NewFlashcardService(uowFactory, nil, nil)
	analyticsService := service.NewAnalyticsService(uowFactory)

	course, err := courseService.Create(ctx, userId, &dto.CreateCourseRequest{Name: "Latin"})
	require.NoError(t, err)
	defer courseService.Delete(ctx, userId, course.Id)

	card, err := cardService.Create(ctx, userId, &dto.CreateFlashcardRequest{
		CourseId: course.Id,
		Front:    "agricola",
		Back:     "farmer",
	})
	require.NoError(t, err)

	summary, err := analyticsService.Summary(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CourseCount)
	assert.Equal(t, 1, summary.FlashcardCount)
	assert.Equal(t, 1, summary.DueToday)
	assert.Equal(t, 0, summary.ReviewedToday)

	_, err = cardService.Review(ctx, userId, &dto.ReviewFlashcardRequest{Id: card.Id, Quality: 4})
	require.NoError(t, err)

	summary, err = analyticsService.Summary(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ReviewedToday)
	assert.Equal(t, 0, summary.DueToday)
}

func TestCourseDeleteRemovesDocumentsAndIndices(t *testing.T) {
	uowFactory := connect(t)
	ctx := context.Background()

	userId := seedTestUser(t, ctx, uowFactory, "teardown")
	indexStore := repository.NewGormIndexStore(uowFactory)
	courseService := service.NewCourseService(uowFactory, indexStore)

	course, err := courseService.Create(ctx, userId, &dto.CreateCourseRequest{Name: "History"})
	require.NoError(t, err)

	uow := uowFactory.NewUnitOfWork(ctx)
	doc := &entity.Document{
		Id:          uuid.New(),
		CourseId:    course.Id,
		UserId:      userId,
		DisplayName: "Lecture.pdf",
		SourceType:  entity.DocumentSourcePDF,
		Status:      entity.DocumentStatusReady,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, uow.DocumentRepository().Create(ctx, doc))

	chunks := []chunker.Chunk{{Text: "the treaty was signed", SequenceIndex: 0}}
	_, err = indexStore.Build(ctx, doc.Id, chunks, flatEmbedder{})
	require.NoError(t, err)

	require.NoError(t, courseService.Delete(ctx, userId, course.Id))

	// The document row and its embedding rows go with the course.
	gone, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: doc.Id})
	require.NoError(t, err)
	assert.Nil(t, gone)

	count, err := uow.DocumentEmbeddingRepository().CountByDocumentId(ctx, doc.Id)
	require.NoError(t, err)
	assert.Zero(t, count)
}
