package memory

import (
	"context"
	"sync"

	"github.com/chiemelie/bookhub/internal/domain/client"
)

type ClientsRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  []client.Client
}

func NewClientsRepo() *ClientsRepo {
	return &ClientsRepo{nextID: 1}
}

func (r *ClientsRepo) Create(ctx context.Context, req client.CreateClientRequest) (client.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := client.Client{
		ID:        r.nextID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	}

	r.nextID++
	r.items = append(r.items, c)

	return c, nil
}

// List returns clients in insertion order, same as the postgres repo.
func (r *ClientsRepo) List(ctx context.Context) ([]client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]client.Client, len(r.items))
	copy(out, r.items)

	return out, nil
}

func (r *ClientsRepo) GetByID(ctx context.Context, id int64) (client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}

	return client.Client{}, client.ErrNotFound
}
