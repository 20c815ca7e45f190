package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryCommentStore is a development-only in-memory implementation.
type InMemoryCommentStore struct {
	mu       sync.RWMutex
	nextID   int64
	comments map[int64]Comment
}

func NewInMemoryCommentStore() *InMemoryCommentStore {
	return &InMemoryCommentStore{comments: make(map[int64]Comment)}
}

func (s *InMemoryCommentStore) Create(_ context.Context, c Comment) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	c.ID = s.nextID
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.comments[c.ID] = c
	return c, nil
}

func (s *InMemoryCommentStore) GetByID(_ context.Context, id int64) (Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return Comment{}, ErrNotFound
	}
	return c, nil
}

func (s *InMemoryCommentStore) UpdateContent(_ context.Context, id int64, content string) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return Comment{}, ErrNotFound
	}
	c.Content = content
	c.UpdatedAt = time.Now().UTC()
	s.comments[id] = c
	return c, nil
}

func (s *InMemoryCommentStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

func (s *InMemoryCommentStore) ListRoots(_ context.Context, mediaID int64, req PageRequest) ([]Comment, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []Comment
	for _, c := range s.comments {
		if c.MediaID == mediaID && c.ParentID == nil {
			matches = append(matches, c)
		}
	}
	return window(matches, req)
}

func (s *InMemoryCommentStore) ListReplies(_ context.Context, parentID int64, req PageRequest) ([]Comment, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []Comment
	for _, c := range s.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			matches = append(matches, c)
		}
	}
	return window(matches, req)
}

func (s *InMemoryCommentStore) CountReplies(_ context.Context, parentID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, c := range s.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			n++
		}
	}
	return n, nil
}

// window sorts matches by insertion order and cuts the requested page.
func window(matches []Comment, req PageRequest) ([]Comment, int64, error) {
	req = req.Normalize()
	total := int64(len(matches))

	sort.Slice(matches, func(i, j int) bool {
		if req.NewestFirst {
			return matches[i].ID > matches[j].ID
		}
		return matches[i].ID < matches[j].ID
	})

	start := req.Offset()
	if start >= len(matches) {
		return []Comment{}, total, nil
	}
	end := start + req.Size
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], total, nil
}
