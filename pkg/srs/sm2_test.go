package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestNewSchedule(t *testing.T) {
	s := NewSchedule()

	assert.Equal(t, 2.5, s.EaseFactor)
	assert.Equal(t, 1, s.Interval)
	assert.Equal(t, 0, s.Repetitions)
}

func TestReviewIntervalLadder(t *testing.T) {
	s := NewSchedule()

	s = Review(s, 5, reviewTime)
	assert.Equal(t, 1, s.Interval)
	assert.Equal(t, 1, s.Repetitions)

	s = Review(s, 5, reviewTime)
	assert.Equal(t, 6, s.Interval)
	assert.Equal(t, 2, s.Repetitions)

	// Third review multiplies by the accumulated ease factor: after two
	// perfect reviews EF is 2.7, so round(6 * 2.7) = 16.
	s = Review(s, 5, reviewTime)
	assert.Equal(t, 16, s.Interval)
	assert.Equal(t, 3, s.Repetitions)
}

func TestReviewFailureResets(t *testing.T) {
	s := NewSchedule()
	s = Review(s, 5, reviewTime)
	s = Review(s, 5, reviewTime)
	s = Review(s, 5, reviewTime)
	require.Equal(t, 3, s.Repetitions)
	efBefore := s.EaseFactor

	s = Review(s, 2, reviewTime)

	assert.Equal(t, 0, s.Repetitions)
	assert.Equal(t, 1, s.Interval)
	// The ease factor update applies even on failure.
	assert.Less(t, s.EaseFactor, efBefore)
}

func TestReviewEaseFactorUpdate(t *testing.T) {
	tests := []struct {
		name    string
		quality int
		wantEF  float64
	}{
		{name: "perfect", quality: 5, wantEF: 2.6},
		{name: "hesitant", quality: 4, wantEF: 2.5},
		{name: "difficult", quality: 3, wantEF: 2.36},
		{name: "blackout", quality: 0, wantEF: 1.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Review(NewSchedule(), tt.quality, reviewTime)
			assert.InDelta(t, tt.wantEF, s.EaseFactor, 1e-9)
		})
	}
}

func TestReviewEaseFactorFloor(t *testing.T) {
	s := NewSchedule()
	for i := 0; i < 10; i++ {
		s = Review(s, 0, reviewTime)
	}

	assert.Equal(t, MinEaseFactor, s.EaseFactor)
}

func TestReviewClampsQuality(t *testing.T) {
	high := Review(NewSchedule(), 9, reviewTime)
	assert.Equal(t, Review(NewSchedule(), 5, reviewTime), high)

	low := Review(NewSchedule(), -3, reviewTime)
	assert.Equal(t, Review(NewSchedule(), 0, reviewTime), low)
}

func TestReviewSetsNextReview(t *testing.T) {
	s := Review(NewSchedule(), 4, reviewTime)
	assert.Equal(t, reviewTime, s.LastReviewed)
	assert.Equal(t, reviewTime.AddDate(0, 0, 1), s.NextReview)

	s = Review(s, 4, reviewTime)
	assert.Equal(t, reviewTime.AddDate(0, 0, 6), s.NextReview)
}

func TestReviewDoesNotMutateInput(t *testing.T) {
	before := NewSchedule()
	_ = Review(before, 5, reviewTime)

	assert.Equal(t, NewSchedule(), before)
}
