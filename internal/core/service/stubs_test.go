package service

import (
	"context"
	"sync"

	"github.com/complaintdesk/complaints-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	byID   map[int64]*domain.User
	nextID int64
	err    error // if set, every call returns it
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, u := range r.byID {
		if u.Name == user.Name {
			return domain.ErrUserExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.byID[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByName(_ context.Context, name string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if u.Name == name {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubComplaintRepo struct {
	mu        sync.Mutex
	byID      map[int64]*domain.Complaint
	nextID    int64
	createErr error
	updates   int
	deletes   int
}

func newStubComplaintRepo() *stubComplaintRepo {
	return &stubComplaintRepo{byID: make(map[int64]*domain.Complaint)}
}

func (r *stubComplaintRepo) Create(_ context.Context, c *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	c.ID = r.nextID
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubComplaintRepo) FindByID(_ context.Context, id int64) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrComplaintNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubComplaintRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Complaint
	for _, c := range r.byID {
		if c.OwnerID == ownerID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

// Update mirrors the owner-scoped WHERE clause of the SQL stores.
func (r *stubComplaintRepo) Update(_ context.Context, c *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[c.ID]
	if !ok || cur.OwnerID != c.OwnerID {
		return domain.ErrComplaintNotFound
	}
	r.updates++
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubComplaintRepo) Delete(_ context.Context, id, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[id]
	if !ok || cur.OwnerID != ownerID {
		return domain.ErrComplaintNotFound
	}
	r.deletes++
	delete(r.byID, id)
	return nil
}

type idemKey struct {
	owner int64
	key   string
}

type stubIdempotencyStore struct {
	seen      map[idemKey]int64
	lookupErr error
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{seen: make(map[idemKey]int64)}
}

func (s *stubIdempotencyStore) Lookup(_ context.Context, ownerID int64, key string) (int64, bool, error) {
	if s.lookupErr != nil {
		return 0, false, s.lookupErr
	}
	id, ok := s.seen[idemKey{ownerID, key}]
	return id, ok, nil
}

func (s *stubIdempotencyStore) Remember(_ context.Context, ownerID int64, key string, complaintID int64) error {
	if _, ok := s.seen[idemKey{ownerID, key}]; !ok {
		s.seen[idemKey{ownerID, key}] = complaintID
	}
	return nil
}

func (s *stubIdempotencyStore) Forget(_ context.Context, ownerID int64, key string) error {
	delete(s.seen, idemKey{ownerID, key})
	return nil
}
