package usecase_test

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
// Repositorios en memoria para tests
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) ListByStatus(_ context.Context, status string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Status == status {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type memBatchRepo struct {
	batches map[string]*entity.Batch
}

func newMemBatchRepo(batches ...entity.Batch) *memBatchRepo {
	r := &memBatchRepo{batches: map[string]*entity.Batch{}}
	for i := range batches {
		b := batches[i]
		r.batches[b.ID] = &b
	}
	return r
}

func (r *memBatchRepo) List(_ context.Context) ([]entity.Batch, error) {
	var out []entity.Batch
	for _, b := range r.batches {
		out = append(out, copyBatch(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memBatchRepo) ListByDateRange(ctx context.Context, _, _ *time.Time) ([]entity.Batch, error) {
	return r.List(ctx)
}

func (r *memBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	cp := copyBatch(b)
	return &cp, nil
}

func (r *memBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	cp := copyBatch(b)
	r.batches[b.ID] = &cp
	return nil
}

func (r *memBatchRepo) UpdateDate(_ context.Context, id string, date time.Time) error {
	b, ok := r.batches[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Date = date
	return nil
}

func (r *memBatchRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.batches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.batches, id)
	return nil
}

func (r *memBatchRepo) CreateSale(_ context.Context, s *entity.Sale) error {
	b, ok := r.batches[s.BatchID]
	if !ok {
		return domain.ErrNotFound
	}
	b.Sales = append(b.Sales, *s)
	return nil
}

func (r *memBatchRepo) GetSale(_ context.Context, batchID, saleID string) (*entity.Sale, error) {
	b, ok := r.batches[batchID]
	if !ok {
		return nil, nil
	}
	for _, s := range b.Sales {
		if s.ID == saleID {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memBatchRepo) UpdateSale(_ context.Context, s *entity.Sale) error {
	b, ok := r.batches[s.BatchID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range b.Sales {
		if b.Sales[i].ID == s.ID {
			b.Sales[i] = *s
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memBatchRepo) DeleteSale(_ context.Context, batchID, saleID string) error {
	b, ok := r.batches[batchID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range b.Sales {
		if b.Sales[i].ID == saleID {
			b.Sales = append(b.Sales[:i], b.Sales[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func copyBatch(b *entity.Batch) entity.Batch {
	cp := *b
	cp.Sales = append([]entity.Sale(nil), b.Sales...)
	return cp
}

// recordingNotifier guarda los eventos publicados.
type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.Event
}

func (n *recordingNotifier) Publish(_ context.Context, ev ports.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Type)
	}
	return out
}
