package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/siteauth/internal/common"
	"github.com/dmitrijs2005/siteauth/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. Data is lost on restart;
// meant for tests and local demos.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byEmail: make(map[string]*models.User),
		byID:    make(map[string]*models.User),
	}
}

func (r *MemoryRepository) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	u := *user
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()

	r.byEmail[u.Email] = &u
	r.byID[u.ID] = &u

	out := u
	return &out, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(ctx, func() *models.User { return r.byEmail[email] })
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(ctx, func() *models.User { return r.byID[id] })
}

func (r *MemoryRepository) find(ctx context.Context, lookup func() *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u := lookup()
	if u == nil {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}
