package main

import (
	"testing"

	"github.com/robert-malhotra/go-halo/halo"
)

func TestWithOptionsDoesNotShareStorage(t *testing.T) {
	base := make([]halo.Option, 1, 4)
	base[0] = halo.WithConcurrency(2)

	first := withOptions(base, halo.WithName("overlap"))
	second := withOptions(base, halo.WithOuterEdges(), halo.WithBoundary(nil))

	if len(first) != 2 || len(second) != 3 {
		t.Fatalf("withOptions lengths = %d, %d, want 2, 3", len(first), len(second))
	}
	if spare := base[:cap(base)]; spare[1] != nil || spare[2] != nil {
		t.Fatalf("withOptions wrote into the spare capacity of base")
	}
	if &first[0] == &base[0] || &second[0] == &base[0] || &first[0] == &second[0] {
		t.Fatalf("withOptions results alias each other or base")
	}
}
