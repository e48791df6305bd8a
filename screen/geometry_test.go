package screen

import "testing"

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), NewRect(5, 5, 5, 5)},
		{"contained", NewRect(0, 0, 10, 10), NewRect(2, 2, 3, 3), NewRect(2, 2, 3, 3)},
		{"disjoint", NewRect(0, 0, 5, 5), NewRect(10, 10, 5, 5), Rect{}},
		{"touching edges", NewRect(0, 0, 5, 5), NewRect(5, 0, 5, 5), Rect{}},
		{"zero width", NewRect(0, 0, 10, 10), NewRect(3, 3, 0, 5), Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Intersect(tt.b)
			if got.Empty() != tt.want.Empty() {
				t.Fatalf("emptiness mismatch: got %v want %v", got, tt.want)
			}
			if !got.Empty() && got != tt.want {
				t.Errorf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2) // covers x 2..5, y 3..4
	if !r.Contains(Point{2, 3}) {
		t.Error("expected top-left inclusive")
	}
	if r.Contains(Point{6, 3}) || r.Contains(Point{2, 5}) {
		t.Error("expected bottom-right exclusive")
	}
	if NewRect(0, 0, 0, 0).Contains(Point{0, 0}) {
		t.Error("empty rect contains nothing")
	}
}

func TestRectUnionAndInset(t *testing.T) {
	u := NewRect(0, 0, 2, 2).Union(NewRect(5, 5, 2, 2))
	if u != NewRect(0, 0, 7, 7) {
		t.Errorf("union got %v", u)
	}
	if got := NewRect(0, 0, 2, 2).Union(Rect{}); got != NewRect(0, 0, 2, 2) {
		t.Errorf("union with empty got %v", got)
	}
	if got := NewRect(1, 1, 6, 6).Inset(2); got != NewRect(3, 3, 2, 2) {
		t.Errorf("inset got %v", got)
	}
	if got := NewRect(0, 0, 3, 3).Inset(2); !got.Empty() {
		t.Errorf("over-inset should be empty, got %v", got)
	}
}

func TestNewRectNegativeSize(t *testing.T) {
	r := NewRect(4, 4, -3, 5)
	if !r.Empty() {
		t.Errorf("negative width should yield empty rect, got %v", r)
	}
}
