package services

import (
	"math"

	"github.com/storely/store-rating-service/internal/models"
)

// averageAndCount computes the arithmetic mean of the ratings, rounded to two
// decimal places, and their count. Recomputed from the live rating set on
// every read; an empty set averages to 0.00.
func averageAndCount(ratings []models.Rating) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	avg := float64(sum) / float64(len(ratings))
	return roundFloat(avg, 2), len(ratings)
}

func roundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// buildPagination normalizes page/limit and derives totalPages = ceil(total/limit).
func buildPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// normalizeQuery applies the pagination defaults and cap to a list query.
func normalizeQuery(query *ListQuery) (page, limit, offset int) {
	page = query.Page
	if page < 1 {
		page = 1
	}
	limit = query.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit, (page - 1) * limit
}

// ===== MODEL -> DTO MAPPERS =====

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toStoreResponse(store *models.Store) StoreResponse {
	avg, count := averageAndCount(store.Ratings)
	return StoreResponse{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		OwnerID:       store.OwnerID,
		AverageRating: avg,
		TotalRatings:  count,
		CreatedAt:     store.CreatedAt,
		UpdatedAt:     store.UpdatedAt,
	}
}

func toStoreInfo(store *models.Store) StoreInfo {
	if store == nil {
		return StoreInfo{}
	}
	return StoreInfo{
		ID:      store.ID,
		Name:    store.Name,
		Email:   store.Email,
		Address: store.Address,
	}
}

func toStoreRatingEntries(ratings []models.Rating) []StoreRatingEntry {
	entries := make([]StoreRatingEntry, len(ratings))
	for i, r := range ratings {
		entry := StoreRatingEntry{
			ID:        r.ID,
			Rating:    r.Value,
			CreatedAt: r.CreatedAt,
		}
		if r.User != nil {
			entry.User = RaterInfo{
				ID:      r.User.ID,
				Name:    r.User.Name,
				Email:   r.User.Email,
				Address: r.User.Address,
			}
		}
		entries[i] = entry
	}
	return entries
}

func toRatingResponse(rating *models.Rating) RatingResponse {
	return RatingResponse{
		ID:        rating.ID,
		Rating:    rating.Value,
		Store:     toStoreInfo(rating.Store),
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}
