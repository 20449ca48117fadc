package events

import (
	"context"
	"time"
)

// TopicRatings carries rating submission events.
const TopicRatings = "ratings"

// RatingSubmittedEvent is broadcast after a rating upsert. Delivery is best
// effort and at most once, with no ordering contract: a publish failure is
// logged and never fails the originating request.
type RatingSubmittedEvent struct {
	RatingID      uint      `json:"rating_id"`
	StoreID       uint      `json:"store_id"`
	UserID        uint      `json:"user_id"`
	Value         int       `json:"value"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int       `json:"total_ratings"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher is the event publishing contract used by the domain services.
type Publisher interface {
	PublishRatingSubmitted(ctx context.Context, event RatingSubmittedEvent) error
	Close() error
}
