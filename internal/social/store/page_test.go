package store

import "testing"

func TestPageRequestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   PageRequest
		page int
		size int
	}{
		{"defaults", PageRequest{}, 0, DefaultPageSize},
		{"negative page", PageRequest{Page: -3, Size: 10}, 0, 10},
		{"zero size", PageRequest{Page: 2}, 2, DefaultPageSize},
		{"oversized", PageRequest{Size: 500}, 0, MaxPageSize},
	}
	for _, tc := range cases {
		got := tc.in.Normalize()
		if got.Page != tc.page || got.Size != tc.size {
			t.Errorf("%s: got page=%d size=%d, want page=%d size=%d", tc.name, got.Page, got.Size, tc.page, tc.size)
		}
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, PageRequest{Page: 1, Size: 2}, 5)
	if p.Number != 1 || p.Size != 2 {
		t.Fatalf("unexpected window: %+v", p)
	}
	if p.TotalElements != 5 {
		t.Fatalf("expected totalElements 5, got %d", p.TotalElements)
	}
	if p.TotalPages != 3 {
		t.Fatalf("expected totalPages 3, got %d", p.TotalPages)
	}

	empty := NewPage[int](nil, PageRequest{}, 0)
	if empty.Content == nil {
		t.Fatal("expected non-nil content slice")
	}
	if empty.TotalPages != 0 {
		t.Fatalf("expected 0 pages, got %d", empty.TotalPages)
	}
}
