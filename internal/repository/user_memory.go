package repository

import (
	"context"
	"sync"

	"github.com/iliyamo/delivery-price-compare/internal/model"
)

// MemoryUserStore keeps accounts in process memory.  It is the default
// backend for local runs and the reference implementation in tests.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[string]*model.User
	byEmail map[string]string // normalized email -> id
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryUserStore) FindUserByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[NormalizeEmail(email)]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return cloneUser(s.byID[id]), nil
}

func (s *MemoryUserStore) FindUserByID(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *MemoryUserStore) InsertUser(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := NormalizeEmail(u.Email)
	if _, taken := s.byEmail[email]; taken {
		return ErrEmailExists
	}
	u.Email = email
	stored := cloneUser(&u)
	s.byID[u.ID] = &stored
	s.byEmail[email] = u.ID
	return nil
}

func (s *MemoryUserStore) AddFavorite(_ context.Context, userID, restaurantID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[userID]
	if !ok {
		return false, ErrUserNotFound
	}
	if u.HasFavorite(restaurantID) {
		return false, nil
	}
	u.Favorites = append(u.Favorites, restaurantID)
	return true, nil
}

func (s *MemoryUserStore) RemoveFavorite(_ context.Context, userID, restaurantID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[userID]
	if !ok {
		return false, ErrUserNotFound
	}
	for i, id := range u.Favorites {
		if id == restaurantID {
			u.Favorites = append(u.Favorites[:i], u.Favorites[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// cloneUser copies u so callers never share the stored favorites slice.
func cloneUser(u *model.User) model.User {
	out := *u
	out.Favorites = append([]string{}, u.Favorites...)
	if u.Address != nil {
		addr := *u.Address
		out.Address = &addr
	}
	return out
}
