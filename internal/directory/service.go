// Package directory is the client directory: plain create/list over the
// client store, with a short-lived list cache.
package directory

import (
	"context"
	"time"

	"github.com/chiemelie/bookhub/internal/cache"
	"github.com/chiemelie/bookhub/internal/domain/client"
)

const listCacheKey = "clients.list"

type ClientStore interface {
	Create(ctx context.Context, req client.CreateClientRequest) (client.Client, error)
	List(ctx context.Context) ([]client.Client, error)
	GetByID(ctx context.Context, id int64) (client.Client, error)
}

type Service struct {
	clients   ClientStore
	listCache *cache.Cache
}

func NewService(clients ClientStore) *Service {
	return &Service{
		clients:   clients,
		listCache: cache.New(30 * time.Second),
	}
}

func (s *Service) Create(ctx context.Context, req client.CreateClientRequest) (client.Client, error) {
	c, err := s.clients.Create(ctx, req)

	if err != nil {
		return client.Client{}, err
	}

	s.listCache.Invalidate(listCacheKey)

	return c, nil
}

func (s *Service) List(ctx context.Context) ([]client.Client, error) {
	if v, ok := s.listCache.Get(listCacheKey); ok {
		if cached, ok := v.([]client.Client); ok {
			return cached, nil
		}
	}

	out, err := s.clients.List(ctx)

	if err != nil {
		return nil, err
	}

	s.listCache.Set(listCacheKey, out)

	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (client.Client, error) {
	return s.clients.GetByID(ctx, id)
}
