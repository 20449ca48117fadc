package services

import (
	"context"
	"errors"
	"testing"

	"github.com/storely/store-rating-service/internal/events"
	"github.com/storely/store-rating-service/internal/models"
	"github.com/storely/store-rating-service/internal/validator"
)

func newRatingServiceForTest(repo *mockRepository, publisher events.Publisher) RatingService {
	return NewRatingService(repo, publisher, testLogger(), validator.New())
}

func TestRatingService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("first rating inserts and broadcasts", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockPublisher()
		svc := newRatingServiceForTest(repo, publisher)
		store := seedStore(repo, "Golden Gate Grocery Emporium", "shop@goldengate.example.com", "42 Market Street", nil)

		resp, err := svc.Upsert(ctx, 7, &CreateRatingRequest{StoreID: store.ID, Rating: 4})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if resp.Rating != 4 {
			t.Errorf("rating = %d, want 4", resp.Rating)
		}

		published := publisher.PublishedEvents()
		if len(published) != 1 {
			t.Fatalf("published %d events, want 1", len(published))
		}
		event := published[0]
		if event.StoreID != store.ID || event.UserID != 7 || event.Value != 4 {
			t.Errorf("event = %+v", event)
		}
		if event.AverageRating != 4 || event.TotalRatings != 1 {
			t.Errorf("event aggregates = (%v, %d), want (4, 1)", event.AverageRating, event.TotalRatings)
		}
		if event.OccurredAt.IsZero() {
			t.Error("event timestamp should not be zero")
		}
	})

	t.Run("second rating for same store updates in place", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockPublisher()
		svc := newRatingServiceForTest(repo, publisher)
		store := seedStore(repo, "Golden Gate Grocery Emporium", "shop@goldengate.example.com", "42 Market Street", nil)

		first, err := svc.Upsert(ctx, 7, &CreateRatingRequest{StoreID: store.ID, Rating: 2})
		if err != nil {
			t.Fatalf("first Upsert() error = %v", err)
		}
		second, err := svc.Upsert(ctx, 7, &CreateRatingRequest{StoreID: store.ID, Rating: 5})
		if err != nil {
			t.Fatalf("second Upsert() error = %v", err)
		}

		if second.ID != first.ID {
			t.Errorf("resubmission created a new row: %d != %d", second.ID, first.ID)
		}
		if len(repo.ratings.byID) != 1 {
			t.Errorf("rating rows = %d, want 1", len(repo.ratings.byID))
		}

		published := publisher.PublishedEvents()
		if len(published) != 2 {
			t.Fatalf("published %d events, want 2", len(published))
		}
		last := published[1]
		if last.AverageRating != 5 || last.TotalRatings != 1 {
			t.Errorf("aggregates after update = (%v, %d), want (5, 1)", last.AverageRating, last.TotalRatings)
		}
	})

	t.Run("publish failure does not fail the submission", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockPublisher()
		publisher.FailWith(errors.New("broker gone"))
		svc := newRatingServiceForTest(repo, publisher)
		store := seedStore(repo, "Golden Gate Grocery Emporium", "shop@goldengate.example.com", "42 Market Street", nil)

		if _, err := svc.Upsert(ctx, 7, &CreateRatingRequest{StoreID: store.ID, Rating: 3}); err != nil {
			t.Fatalf("Upsert() error = %v, want nil despite publish failure", err)
		}
		if len(repo.ratings.byID) != 1 {
			t.Errorf("rating rows = %d, want 1", len(repo.ratings.byID))
		}
	})

	t.Run("unknown store", func(t *testing.T) {
		repo := newMockRepository()
		svc := newRatingServiceForTest(repo, events.NewMockPublisher())

		_, err := svc.Upsert(ctx, 7, &CreateRatingRequest{StoreID: 404, Rating: 3})
		if !errors.Is(err, ErrStoreNotFound) {
			t.Errorf("error = %v, want ErrStoreNotFound", err)
		}
	})

	t.Run("out-of-range value rejected before any write", func(t *testing.T) {
		repo := newMockRepository()
		svc := newRatingServiceForTest(repo, events.NewMockPublisher())
		store := seedStore(repo, "Golden Gate Grocery Emporium", "shop@goldengate.example.com", "42 Market Street", nil)

		_, err := svc.Upsert(ctx, 7, &CreateRatingRequest{StoreID: store.ID, Rating: 6})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("error = %T, want ValidationErrors", err)
		}
		if len(repo.ratings.byID) != 0 {
			t.Errorf("rating rows = %d, want 0", len(repo.ratings.byID))
		}
	})
}

func TestRatingService_ListMine(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc := newRatingServiceForTest(repo, events.NewMockPublisher())
	storeA := seedStore(repo, "Golden Gate Grocery Emporium", "a@stores.example.com", "42 Market Street", nil)
	storeB := seedStore(repo, "Second Registered Storefront", "b@stores.example.com", "2 Second Street", nil)

	if _, err := svc.Upsert(ctx, 7, &CreateRatingRequest{StoreID: storeA.ID, Rating: 4}); err != nil {
		t.Fatalf("seed rating: %v", err)
	}
	if _, err := svc.Upsert(ctx, 7, &CreateRatingRequest{StoreID: storeB.ID, Rating: 2}); err != nil {
		t.Fatalf("seed rating: %v", err)
	}
	if _, err := svc.Upsert(ctx, 9, &CreateRatingRequest{StoreID: storeA.ID, Rating: 1}); err != nil {
		t.Fatalf("seed rating: %v", err)
	}

	mine, err := svc.ListMine(ctx, 7)
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("got %d ratings, want 2", len(mine))
	}
	// Newest first.
	if mine[0].Rating != 2 || mine[1].Rating != 4 {
		t.Errorf("order = [%d, %d], want [2, 4]", mine[0].Rating, mine[1].Rating)
	}
}

func TestRatingService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes own rating", func(t *testing.T) {
		repo := newMockRepository()
		svc := newRatingServiceForTest(repo, events.NewMockPublisher())
		store := seedStore(repo, "Golden Gate Grocery Emporium", "shop@goldengate.example.com", "42 Market Street", nil)
		resp, err := svc.Upsert(ctx, 7, &CreateRatingRequest{StoreID: store.ID, Rating: 4})
		if err != nil {
			t.Fatalf("seed rating: %v", err)
		}

		if err := svc.Delete(ctx, 7, resp.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if len(repo.ratings.byID) != 0 {
			t.Errorf("rating rows = %d, want 0", len(repo.ratings.byID))
		}
	})

	t.Run("stranger gets PermissionError and the row survives", func(t *testing.T) {
		repo := newMockRepository()
		svc := newRatingServiceForTest(repo, events.NewMockPublisher())
		store := seedStore(repo, "Golden Gate Grocery Emporium", "shop@goldengate.example.com", "42 Market Street", nil)
		resp, err := svc.Upsert(ctx, 7, &CreateRatingRequest{StoreID: store.ID, Rating: 4})
		if err != nil {
			t.Fatalf("seed rating: %v", err)
		}

		err = svc.Delete(ctx, 9, resp.ID)
		var perr *PermissionError
		if !errors.As(err, &perr) {
			t.Fatalf("error = %T (%v), want PermissionError", err, err)
		}
		if perr.UserID != 9 {
			t.Errorf("permission error user = %d, want 9", perr.UserID)
		}
		if len(repo.ratings.byID) != 1 {
			t.Errorf("rating rows = %d, want 1", len(repo.ratings.byID))
		}
	})

	t.Run("unknown rating", func(t *testing.T) {
		repo := newMockRepository()
		svc := newRatingServiceForTest(repo, events.NewMockPublisher())

		if err := svc.Delete(ctx, 7, 404); !errors.Is(err, ErrRatingNotFound) {
			t.Errorf("error = %v, want ErrRatingNotFound", err)
		}
	})

	t.Run("rating aggregate uses remaining ratings", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockPublisher()
		svc := newRatingServiceForTest(repo, publisher)
		store := seedStore(repo, "Golden Gate Grocery Emporium", "shop@goldengate.example.com", "42 Market Street", nil)
		if _, err := svc.Upsert(ctx, 7, &CreateRatingRequest{StoreID: store.ID, Rating: 5}); err != nil {
			t.Fatalf("seed rating: %v", err)
		}
		resp, err := svc.Upsert(ctx, 9, &CreateRatingRequest{StoreID: store.ID, Rating: 1})
		if err != nil {
			t.Fatalf("seed rating: %v", err)
		}
		if err := svc.Delete(ctx, 9, resp.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		var ratings []models.Rating
		for _, r := range repo.ratings.byID {
			ratings = append(ratings, *r)
		}
		avg, count := averageAndCount(ratings)
		if avg != 5 || count != 1 {
			t.Errorf("aggregates after delete = (%v, %d), want (5, 1)", avg, count)
		}
	})
}
