package server

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/parsa-mehek/LinkingLink-client/internal/models"
)

// MemoryRepository хранит пользователей и записи в памяти процесса.
// Используется при database.driver = memory и в тестах.
type MemoryRepository struct {
	mu       sync.RWMutex
	users    []models.User
	progress map[int64][]models.ProgressEntry
	nextID   int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		progress: make(map[int64][]models.ProgressEntry),
	}
}

func (r *MemoryRepository) CreateUser(_ context.Context, user *models.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.UserID == user.UserID || strings.EqualFold(u.Email, user.Email) {
			return 0, ErrUserAlreadyExists
		}
	}

	r.nextID++
	stored := *user
	stored.ID = models.NewID(r.nextID)
	r.users = append(r.users, stored)

	return r.nextID, nil
}

func (r *MemoryRepository) GetByUserID(_ context.Context, userID string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.UserID == userID })
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == models.NewID(id) })
}

func (r *MemoryRepository) find(match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := slices.IndexFunc(r.users, match)
	if idx < 0 {
		return nil, ErrUserNotFound
	}

	user := r.users[idx]

	return &user, nil
}

func (r *MemoryRepository) CreateEntry(
	_ context.Context,
	userID int64,
	req models.ProgressRequest,
	createdAt time.Time,
) (models.ProgressEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry := models.NewProgressEntry(req, createdAt)
	entry.ID = models.NewID(r.nextID)
	r.progress[userID] = append(r.progress[userID], entry)

	return entry, nil
}

func (r *MemoryRepository) ListEntries(_ context.Context, userID int64) ([]models.ProgressEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.progress[userID]), nil
}

func (r *MemoryRepository) Close() error {
	return nil
}
