package pagination

import "testing"

func TestNewClampsValues(t *testing.T) {
	tests := []struct {
		page, limit     int
		wantPage, wantL int
		wantOffset      int
	}{
		{1, 20, 1, 20, 0},
		{0, 0, 1, DefaultLimit, 0},
		{3, 10, 3, 10, 20},
		{2, 500, 2, MaxLimit, MaxLimit},
	}

	for _, tt := range tests {
		p := New(tt.page, tt.limit)
		if p.Page != tt.wantPage || p.Limit != tt.wantL || p.Offset != tt.wantOffset {
			t.Fatalf("New(%d, %d) = %+v", tt.page, tt.limit, p)
		}
	}
}

func TestNewPageMeta(t *testing.T) {
	page := NewPage([]string{"a", "b"}, New(2, 2), 5)
	if page.Meta.TotalPages != 3 || !page.Meta.HasNext || !page.Meta.HasPrev {
		t.Fatalf("unexpected meta: %+v", page.Meta)
	}

	empty := NewPage[string](nil, New(1, 20), 0)
	if empty.Items == nil || empty.Meta.TotalPages != 0 || empty.Meta.HasNext {
		t.Fatalf("unexpected empty page: %+v", empty)
	}
}

func TestParseID(t *testing.T) {
	if id, ok := ParseID("42"); !ok || id != 42 {
		t.Fatalf("expected 42, got %d %v", id, ok)
	}
	for _, raw := range []string{"", "0", "-1", "abc"} {
		if _, ok := ParseID(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
