// Package srs implements the SM-2 spaced repetition algorithm used to
// schedule flashcard reviews.
package srs

import (
	"math"
	"time"
)

// MinEaseFactor is the floor below which the ease factor never drops.
const MinEaseFactor = 1.3

// Schedule is the review state carried by a single card.
type Schedule struct {
	EaseFactor   float64
	Interval     int // days until the next review
	Repetitions  int
	NextReview   time.Time
	LastReviewed time.Time
}

// NewSchedule returns the state of a card that has never been reviewed.
func NewSchedule() Schedule {
	return Schedule{
		EaseFactor:  2.5,
		Interval:    1,
		Repetitions: 0,
	}
}

// Review applies one SM-2 step. Quality is clamped to [0,5]; a quality
// below 3 resets the repetition streak and sends the card back to a one
// day interval. The ease factor update is applied on every review,
// successful or not, and never drops below MinEaseFactor.
func Review(s Schedule, quality int, now time.Time) Schedule {
	if quality < 0 {
		quality = 0
	}
	if quality > 5 {
		quality = 5
	}

	next := s
	if quality < 3 {
		next.Repetitions = 0
		next.Interval = 1
	} else {
		switch next.Repetitions {
		case 0:
			next.Interval = 1
		case 1:
			next.Interval = 6
		default:
			next.Interval = int(math.Round(float64(s.Interval) * s.EaseFactor))
		}
		next.Repetitions++
	}

	q := float64(quality)
	next.EaseFactor = s.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if next.EaseFactor < MinEaseFactor {
		next.EaseFactor = MinEaseFactor
	}

	next.LastReviewed = now
	next.NextReview = now.AddDate(0, 0, next.Interval)
	return next
}
