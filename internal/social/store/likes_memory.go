package store

import (
	"context"
	"sync"
	"time"
)

// InMemoryLikeStore is a development-only in-memory implementation. The
// pair index enforces the same (user, media) uniqueness the Postgres
// constraint does.
type InMemoryLikeStore struct {
	mu     sync.RWMutex
	nextID int64
	likes  map[int64]Like
	byPair map[[2]int64]int64 // (userID, mediaID) -> like id
}

func NewInMemoryLikeStore() *InMemoryLikeStore {
	return &InMemoryLikeStore{
		likes:  make(map[int64]Like),
		byPair: make(map[[2]int64]int64),
	}
}

func (s *InMemoryLikeStore) Create(_ context.Context, l Like) (Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]int64{l.UserID, l.MediaID}
	if _, ok := s.byPair[key]; ok {
		return Like{}, ErrDuplicate
	}

	s.nextID++
	l.ID = s.nextID
	l.CreatedAt = time.Now().UTC()
	s.likes[l.ID] = l
	s.byPair[key] = l.ID
	return l, nil
}

func (s *InMemoryLikeStore) FindByUserAndMedia(_ context.Context, userID, mediaID int64) (Like, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPair[[2]int64{userID, mediaID}]
	if !ok {
		return Like{}, ErrNotFound
	}
	return s.likes[id], nil
}

func (s *InMemoryLikeStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.likes[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.likes, id)
	delete(s.byPair, [2]int64{l.UserID, l.MediaID})
	return nil
}

func (s *InMemoryLikeStore) CountByMedia(_ context.Context, mediaID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, l := range s.likes {
		if l.MediaID == mediaID {
			n++
		}
	}
	return n, nil
}

func (s *InMemoryLikeStore) ExistsByUserAndMedia(_ context.Context, userID, mediaID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byPair[[2]int64{userID, mediaID}]
	return ok, nil
}
