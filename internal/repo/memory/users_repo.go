package memory

import (
	"context"
	"sync"

	"github.com/chiemelie/bookhub/internal/domain/user"
)

// UsersRepo is an in-memory stand-in for the postgres repo, used in tests and
// local runs without a database.
type UsersRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		nextID: 1,
		items:  make(map[int64]user.User),
	}
}

func (r *UsersRepo) Create(ctx context.Context, email, name, role, passwordHash string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.items {
		if u.Email == email {
			return user.User{}, user.ErrEmailTaken
		}
	}

	u := user.User{
		ID:           r.nextID,
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: passwordHash,
	}

	r.nextID++
	r.items[u.ID] = u

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}
