package services

import (
	"context"
	"log/slog"
	"os"
	"sort"

	"gorm.io/gorm"

	"github.com/storely/store-rating-service/internal/models"
	"github.com/storely/store-rating-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockRepository is an in-memory Repository used across the service tests.
// It mirrors the database's unique constraints: duplicate emails return
// gorm.ErrDuplicatedKey, and rating upserts resolve on (user_id, store_id).
type mockRepository struct {
	users   *mockUserRepo
	stores  *mockStoreRepo
	ratings *mockRatingRepo
}

func newMockRepository() *mockRepository {
	m := &mockRepository{
		users:   &mockUserRepo{byID: map[uint]*models.User{}},
		stores:  &mockStoreRepo{byID: map[uint]*models.Store{}},
		ratings: &mockRatingRepo{byID: map[uint]*models.Rating{}},
	}
	m.ratings.stores = m.stores
	return m
}

func (m *mockRepository) User() repositories.UserRepository           { return m.users }
func (m *mockRepository) Store() repositories.StoreRepository         { return m.stores }
func (m *mockRepository) Rating() repositories.RatingRepository       { return m.ratings }
func (m *mockRepository) Dashboard() repositories.DashboardRepository { return &mockDashboardRepo{m} }
func (m *mockRepository) Ping(ctx context.Context) error              { return nil }
func (m *mockRepository) Close() error                                { return nil }

// ===== users =====

type mockUserRepo struct {
	byID   map[uint]*models.User
	nextID uint
	err    error // injected failure for every call
}

func (r *mockUserRepo) Create(_ context.Context, user *models.User) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.byID {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.byID[user.ID] = user
	return nil
}

func (r *mockUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *mockUserRepo) GetByIDWithDetails(ctx context.Context, id uint) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, user := range r.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) List(_ context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	all := make([]*models.User, 0, len(r.byID))
	for _, user := range r.byID {
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	return paginate(all, filters.Offset, filters.Limit), total, nil
}

func (r *mockUserRepo) UpdatePassword(_ context.Context, id uint, passwordHash string) error {
	if r.err != nil {
		return r.err
	}
	user, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Password = passwordHash
	return nil
}

// ===== stores =====

type mockStoreRepo struct {
	byID   map[uint]*models.Store
	nextID uint
	err    error
}

func (r *mockStoreRepo) Create(_ context.Context, store *models.Store) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.byID {
		if existing.Email == store.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	store.ID = r.nextID
	r.byID[store.ID] = store
	return nil
}

func (r *mockStoreRepo) GetByID(_ context.Context, id uint) (*models.Store, error) {
	if r.err != nil {
		return nil, r.err
	}
	store, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return store, nil
}

func (r *mockStoreRepo) GetByIDWithRatings(ctx context.Context, id uint) (*models.Store, error) {
	return r.GetByID(ctx, id)
}

func (r *mockStoreRepo) GetOwnedStore(_ context.Context, id, ownerID uint) (*models.Store, error) {
	if r.err != nil {
		return nil, r.err
	}
	store, ok := r.byID[id]
	if !ok || store.OwnerID == nil || *store.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return store, nil
}

func (r *mockStoreRepo) List(_ context.Context, filters repositories.StoreFilters) ([]*models.Store, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	all := r.sorted()
	return paginate(all, filters.Offset, filters.Limit), int64(len(all)), nil
}

func (r *mockStoreRepo) ListAll(_ context.Context) ([]*models.Store, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.sorted(), nil
}

func (r *mockStoreRepo) ListByOwner(_ context.Context, ownerID uint) ([]*models.Store, error) {
	if r.err != nil {
		return nil, r.err
	}
	var owned []*models.Store
	for _, store := range r.sorted() {
		if store.OwnerID != nil && *store.OwnerID == ownerID {
			owned = append(owned, store)
		}
	}
	return owned, nil
}

func (r *mockStoreRepo) Update(_ context.Context, store *models.Store) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byID[store.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, existing := range r.byID {
		if existing.ID != store.ID && existing.Email == store.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.byID[store.ID] = store
	return nil
}

func (r *mockStoreRepo) Delete(_ context.Context, id uint) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *mockStoreRepo) sorted() []*models.Store {
	all := make([]*models.Store, 0, len(r.byID))
	for _, store := range r.byID {
		all = append(all, store)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// ===== ratings =====

type mockRatingRepo struct {
	byID   map[uint]*models.Rating
	nextID uint
	err    error
	stores *mockStoreRepo // kept in sync so aggregates see new ratings
}

func (r *mockRatingRepo) Upsert(_ context.Context, rating *models.Rating) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.byID {
		if existing.UserID == rating.UserID && existing.StoreID == rating.StoreID {
			existing.Value = rating.Value
			rating.ID = existing.ID
			r.syncStore(existing.StoreID)
			return nil
		}
	}
	r.nextID++
	rating.ID = r.nextID
	stored := *rating
	r.byID[rating.ID] = &stored
	r.syncStore(rating.StoreID)
	return nil
}

func (r *mockRatingRepo) GetByID(_ context.Context, id uint) (*models.Rating, error) {
	if r.err != nil {
		return nil, r.err
	}
	rating, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rating, nil
}

func (r *mockRatingRepo) GetByUserAndStore(_ context.Context, userID, storeID uint) (*models.Rating, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, rating := range r.byID {
		if rating.UserID == userID && rating.StoreID == storeID {
			if store, ok := r.stores.byID[storeID]; ok {
				rating.Store = store
			}
			return rating, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockRatingRepo) ListByUser(_ context.Context, userID uint) ([]*models.Rating, error) {
	if r.err != nil {
		return nil, r.err
	}
	var mine []*models.Rating
	for _, rating := range r.byID {
		if rating.UserID == userID {
			mine = append(mine, rating)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].ID > mine[j].ID })
	return mine, nil
}

func (r *mockRatingRepo) Delete(_ context.Context, id uint) error {
	if r.err != nil {
		return r.err
	}
	rating, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.byID, id)
	r.syncStore(rating.StoreID)
	return nil
}

// syncStore rebuilds the store's preloaded rating slice, like a fresh read
// with Preload("Ratings") would.
func (r *mockRatingRepo) syncStore(storeID uint) {
	store, ok := r.stores.byID[storeID]
	if !ok {
		return
	}
	store.Ratings = nil
	ids := make([]uint, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if r.byID[id].StoreID == storeID {
			store.Ratings = append(store.Ratings, *r.byID[id])
		}
	}
}

// ===== dashboard =====

type mockDashboardRepo struct {
	root *mockRepository
}

func (r *mockDashboardRepo) CountUsers(context.Context) (int64, error) {
	return int64(len(r.root.users.byID)), nil
}

func (r *mockDashboardRepo) CountStores(context.Context) (int64, error) {
	return int64(len(r.root.stores.byID)), nil
}

func (r *mockDashboardRepo) CountRatings(context.Context) (int64, error) {
	return int64(len(r.root.ratings.byID)), nil
}

func (r *mockDashboardRepo) CountUsersByRole(context.Context) (map[models.UserRole]int64, error) {
	counts := map[models.UserRole]int64{}
	for _, user := range r.root.users.byID {
		counts[user.Role]++
	}
	return counts, nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ===== seeding helpers =====

func strptr(s string) *string { return &s }
func uintp(u uint) *uint      { return &u }

func seedUser(repo *mockRepository, name, email string, role models.UserRole, passwordHash string) *models.User {
	user := &models.User{Name: name, Email: email, Role: role, Password: passwordHash}
	_ = repo.users.Create(context.Background(), user)
	return user
}

func seedStore(repo *mockRepository, name, email, address string, ownerID *uint) *models.Store {
	store := &models.Store{Name: name, Email: email, Address: address, OwnerID: ownerID}
	_ = repo.stores.Create(context.Background(), store)
	return store
}
