package chunks

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		sizes [][]int
	}{
		{"no axes", nil},
		{"empty axis", [][]int{{2, 2}, {}}},
		{"zero size", [][]int{{2, 0}}},
		{"negative size", [][]int{{-1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.sizes...); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestRegular(t *testing.T) {
	l, err := Regular([]int{10, 8}, []int{4, 4})
	if err != nil {
		t.Fatalf("Regular failed: %v", err)
	}

	if got, want := l.Sizes(0), []int{4, 4, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sizes(0) = %v, want %v", got, want)
	}
	if got, want := l.Sizes(1), []int{4, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sizes(1) = %v, want %v", got, want)
	}
	if got, want := l.Boundaries(0), []int{0, 4, 8, 10}; !reflect.DeepEqual(got, want) {
		t.Errorf("Boundaries(0) = %v, want %v", got, want)
	}
	if got, want := l.Shape(), []int{10, 8}; !reflect.DeepEqual(got, want) {
		t.Errorf("Shape() = %v, want %v", got, want)
	}
	if got, want := l.Grid(), []int{3, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Grid() = %v, want %v", got, want)
	}
	if l.Len() != 6 {
		t.Errorf("Len() = %d, want 6", l.Len())
	}

	if _, err := Regular([]int{10}, []int{0}); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for zero block length, got %v", err)
	}
	if _, err := Regular([]int{10}, []int{2, 2}); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for rank mismatch, got %v", err)
	}
}

func TestBoundariesStrictlyIncreasing(t *testing.T) {
	l, err := New([]int{3, 1, 5, 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b := l.Boundaries(0)
	if len(b) != 5 || b[0] != 0 || b[4] != 11 {
		t.Fatalf("Boundaries = %v", b)
	}
	for i := 1; i < len(b); i++ {
		if b[i] <= b[i-1] {
			t.Errorf("boundaries not strictly increasing at %d: %v", i, b)
		}
	}
}

func TestRavelUnravel(t *testing.T) {
	l, _ := New([]int{1, 1}, []int{1, 1, 1}, []int{1, 1, 1, 1})
	indices := l.Indices()
	if len(indices) != 24 {
		t.Fatalf("expected 24 indices, got %d", len(indices))
	}
	for pos, idx := range indices {
		if got := l.Ravel(idx); got != pos {
			t.Errorf("Ravel(%v) = %d, want %d", idx, got, pos)
		}
		if !l.Contains(idx) {
			t.Errorf("Contains(%v) = false", idx)
		}
	}
	if want := (Index{0, 0, 1}); !reflect.DeepEqual(indices[1], want) {
		t.Errorf("row-major order broken: indices[1] = %v, want %v", indices[1], want)
	}
	if l.Contains(Index{2, 0, 0}) || l.Contains(Index{0, 0}) {
		t.Error("Contains accepted an out-of-range index")
	}
}

func TestBlockShapeAndOffset(t *testing.T) {
	l, _ := New([]int{4, 4, 2}, []int{3, 5})
	idx := Index{2, 1}
	if got, want := l.BlockShape(idx), []int{2, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("BlockShape = %v, want %v", got, want)
	}
	if got, want := l.Offset(idx), []int{8, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Offset = %v, want %v", got, want)
	}
}

func TestWithAxis(t *testing.T) {
	l, _ := New([]int{4, 4}, []int{4, 4})
	next, err := l.WithAxis(1, []int{6, 6})
	if err != nil {
		t.Fatalf("WithAxis failed: %v", err)
	}
	if got, want := next.Sizes(1), []int{6, 6}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sizes(1) = %v, want %v", got, want)
	}
	if got, want := l.Sizes(1), []int{4, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("original layout modified: %v", got)
	}
	if _, err := l.WithAxis(0, []int{8}); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid when block count changes, got %v", err)
	}
	if _, err := l.WithAxis(0, []int{4, 0}); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for zero size, got %v", err)
	}
}

func TestIndexKey(t *testing.T) {
	idx := Index{1, 4}
	if got := idx.Key("", "."); got != "1.4" {
		t.Errorf("Key = %q, want %q", got, "1.4")
	}
	if got := idx.Key("overlap-x", "."); got != "overlap-x.1.4" {
		t.Errorf("Key = %q, want %q", got, "overlap-x.1.4")
	}
	if got := idx.String(); got != "(1, 4)" {
		t.Errorf("String = %q", got)
	}
	if got := idx.Shift(0, -1); !reflect.DeepEqual(got, Index{0, 4}) || idx[0] != 1 {
		t.Errorf("Shift = %v, original %v", got, idx)
	}
}
