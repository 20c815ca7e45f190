package store

import (
	"context"
	"errors"
	"testing"
)

func TestLikeCreateAndFind(t *testing.T) {
	s := NewInMemoryLikeStore()
	ctx := context.Background()

	created, err := s.Create(ctx, Like{UserID: 7, MediaID: 100})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected created_at set")
	}

	found, err := s.FindByUserAndMedia(ctx, 7, 100)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected id %d, got %d", created.ID, found.ID)
	}

	if _, err := s.FindByUserAndMedia(ctx, 8, 100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestLikeDuplicatePair(t *testing.T) {
	s := NewInMemoryLikeStore()
	ctx := context.Background()

	if _, err := s.Create(ctx, Like{UserID: 7, MediaID: 100}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := s.Create(ctx, Like{UserID: 7, MediaID: 100}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Same user on another media and another user on the same media both pass.
	if _, err := s.Create(ctx, Like{UserID: 7, MediaID: 200}); err != nil {
		t.Fatalf("other media: %v", err)
	}
	if _, err := s.Create(ctx, Like{UserID: 8, MediaID: 100}); err != nil {
		t.Fatalf("other user: %v", err)
	}
}

func TestLikeDeleteFreesPair(t *testing.T) {
	s := NewInMemoryLikeStore()
	ctx := context.Background()

	created, _ := s.Create(ctx, Like{UserID: 7, MediaID: 100})
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	if _, err := s.Create(ctx, Like{UserID: 7, MediaID: 100}); err != nil {
		t.Fatalf("expected pair reusable after delete: %v", err)
	}
}

func TestLikeCountAndExists(t *testing.T) {
	s := NewInMemoryLikeStore()
	ctx := context.Background()

	_, _ = s.Create(ctx, Like{UserID: 7, MediaID: 100})
	_, _ = s.Create(ctx, Like{UserID: 8, MediaID: 100})
	_, _ = s.Create(ctx, Like{UserID: 7, MediaID: 200})

	n, err := s.CountByMedia(ctx, 100)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}

	ok, err := s.ExistsByUserAndMedia(ctx, 7, 100)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !ok {
		t.Fatal("expected exists true")
	}
	ok, _ = s.ExistsByUserAndMedia(ctx, 9, 100)
	if ok {
		t.Fatal("expected exists false for non-liker")
	}
}
