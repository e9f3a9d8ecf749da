package http_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/panaderia-api/internal/application/ports"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests de handlers
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

func newMemUserRepo(users ...entity.User) *memUserRepo {
	r := &memUserRepo{users: map[string]entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) ListByStatus(_ context.Context, status string) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.User
	for _, u := range r.users {
		if u.Status == status {
			cp := u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type memBatchRepo struct {
	mu      sync.RWMutex
	batches map[string]entity.Batch
}

func newMemBatchRepo(batches ...entity.Batch) *memBatchRepo {
	r := &memBatchRepo{batches: map[string]entity.Batch{}}
	for _, b := range batches {
		r.batches[b.ID] = cloneBatch(b)
	}
	return r
}

func (r *memBatchRepo) List(_ context.Context) ([]entity.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Batch, 0, len(r.batches))
	for _, b := range r.batches {
		out = append(out, cloneBatch(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memBatchRepo) ListByDateRange(ctx context.Context, from, to *time.Time) ([]entity.Batch, error) {
	all, _ := r.List(ctx)
	var out []entity.Batch
	for _, b := range all {
		if from != nil && b.Date.Before(*from) {
			continue
		}
		if to != nil && !b.Date.Before(*to) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *memBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	cp := cloneBatch(b)
	return &cp, nil
}

func (r *memBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[b.ID] = cloneBatch(*b)
	return nil
}

func (r *memBatchRepo) UpdateDate(_ context.Context, id string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Date = date
	r.batches[id] = b
	return nil
}

func (r *memBatchRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.batches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.batches, id)
	return nil
}

func (r *memBatchRepo) CreateSale(_ context.Context, s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[s.BatchID]
	if !ok {
		return domain.ErrNotFound
	}
	b.Sales = append(b.Sales, *s)
	r.batches[b.ID] = b
	return nil
}

func (r *memBatchRepo) GetSale(_ context.Context, batchID, saleID string) (*entity.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.batches[batchID].Sales {
		if s.ID == saleID {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memBatchRepo) UpdateSale(_ context.Context, s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.batches[s.BatchID]
	for i := range b.Sales {
		if b.Sales[i].ID == s.ID {
			b.Sales[i] = *s
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memBatchRepo) DeleteSale(_ context.Context, batchID, saleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[batchID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range b.Sales {
		if b.Sales[i].ID == saleID {
			b.Sales = append(b.Sales[:i], b.Sales[i+1:]...)
			r.batches[batchID] = b
			return nil
		}
	}
	return domain.ErrNotFound
}

func cloneBatch(b entity.Batch) entity.Batch {
	b.Sales = append([]entity.Sale(nil), b.Sales...)
	return b
}

// fakeSubscriber entrega eventos ya cargados y cierra el canal.
type fakeSubscriber struct {
	mu     sync.Mutex
	events []ports.Event
	admin  bool
}

func (s *fakeSubscriber) Subscribe(admin bool) (<-chan ports.Event, func()) {
	s.mu.Lock()
	s.admin = admin
	s.mu.Unlock()
	ch := make(chan ports.Event, len(s.events))
	for _, ev := range s.events {
		ch <- ev
	}
	close(ch)
	return ch, func() {}
}

func (s *fakeSubscriber) subscribedAsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}
