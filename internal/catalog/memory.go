package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kpnaturals/storefront-service/internal/model"
)

// MemoryStore keeps the catalog in process memory. Used in tests and when no
// DATABASE_URL is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]model.Product
	reviews  map[string]model.Review
	now      func() time.Time
}

// NewMemoryStore returns an empty in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]model.Product),
		reviews:  make(map[string]model.Review),
		now:      time.Now,
	}
}

func (s *MemoryStore) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return model.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = s.now().UTC()
	s.products[p.ID] = p
	return p, nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id string) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return model.Product{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return model.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.products[p.ID]
	if !ok {
		return model.Product{}, ErrNotFound
	}
	p.CreatedAt = cur.CreatedAt
	s.products[p.ID] = p
	return p, nil
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	for rid, r := range s.reviews {
		if r.ProductID == id {
			delete(s.reviews, rid)
		}
	}
	return nil
}

func (s *MemoryStore) CreateReview(ctx context.Context, r model.Review) (model.Review, error) {
	if err := ValidateReview(r); err != nil {
		return model.Review{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[r.ProductID]; !ok {
		return model.Review{}, ErrNotFound
	}
	r.ID = uuid.NewString()
	r.CreatedAt = s.now().UTC()
	s.reviews[r.ID] = r
	return r, nil
}

func (s *MemoryStore) ListReviews(ctx context.Context, productID string) ([]model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Review, 0)
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
