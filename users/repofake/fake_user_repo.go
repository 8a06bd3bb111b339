// Package repofake provides an in-memory users.Repo for tests.
package repofake

import (
	"context"
	"sync"
	"time"

	"github.com/wepredict/go-api-server/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	lock   sync.RWMutex
	nextID int64
	byID   map[int64]*users.User
	byMail map[string]int64
	bySub  map[string]int64

	// FailWith, when set, is returned by every call. Used to simulate an
	// unreachable store.
	FailWith error
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		nextID: 1,
		byID:   make(map[int64]*users.User),
		byMail: make(map[string]int64),
		bySub:  make(map[string]int64),
	}
}

func (r *FakeUserRepo) RegisterUser(_ context.Context, email, fullName, passwordHash string) (*users.User, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	if _, ok := r.byMail[email]; ok {
		return nil, users.ErrEmailTaken
	}
	u := r.insert(&users.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Provider:     users.ProviderLocal,
	})
	return copyUser(u), nil
}

func (r *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	id, ok := r.byMail[email]
	if !ok {
		return nil, users.ErrNotFound
	}
	return copyUser(r.byID[id]), nil
}

func (r *FakeUserRepo) RegisterUserGoogle(_ context.Context, googleSub, email, fullName string) (*users.User, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	if _, ok := r.byMail[email]; ok {
		return nil, users.ErrEmailTaken
	}
	u := r.insert(&users.User{
		Email:     email,
		FullName:  fullName,
		GoogleSub: googleSub,
		Provider:  users.ProviderGoogle,
	})
	return copyUser(u), nil
}

func (r *FakeUserRepo) LoginGoogle(_ context.Context, googleSub, email, fullName string) (*users.User, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	if id, ok := r.bySub[googleSub]; ok {
		return copyUser(r.byID[id]), nil
	}
	u := r.insert(&users.User{
		Email:     email,
		FullName:  fullName,
		GoogleSub: googleSub,
		Provider:  users.ProviderGoogle,
	})
	return copyUser(u), nil
}

func (r *FakeUserRepo) GetByID(_ context.Context, id int64) (*users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return copyUser(u), nil
}

// Count reports how many users the fake holds, for reached/not-reached
// assertions.
func (r *FakeUserRepo) Count() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.byID)
}

func (r *FakeUserRepo) insert(u *users.User) *users.User {
	u.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.byID[u.ID] = u
	r.byMail[u.Email] = u.ID
	if u.GoogleSub != "" {
		r.bySub[u.GoogleSub] = u.ID
	}
	return u
}

func copyUser(u *users.User) *users.User {
	c := *u
	return &c
}
