package cholesky_test

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/katalvlaran/riemann/cholesky"
	"github.com/katalvlaran/riemann/tensor"
)

// benchFixture builds a seeded space of 8×8 factors and two point batches.
func benchFixture(b *testing.B, seed uint64, batch int) (*cholesky.Space, *tensor.Tensor, *tensor.Tensor) {
	s, err := cholesky.NewWithSource(8, rand.NewSource(seed))
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	p, err := s.RandomPoint(batch)
	if err != nil {
		b.Fatalf("RandomPoint failed: %v", err)
	}
	q, err := s.RandomPoint(batch)
	if err != nil {
		b.Fatalf("RandomPoint failed: %v", err)
	}
	return s, p, q
}

// BenchmarkExp_256x8 runs the decomposed geodesic step on 256 factors.
func BenchmarkExp_256x8(b *testing.B) {
	s, base, vec := benchFixture(b, 5, 256)
	m := s.Metric()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Exp(vec, base); err != nil {
			b.Fatalf("Exp failed: %v", err)
		}
	}
}

// BenchmarkSquaredDist_256x8 measures the closed-form distance on 256 pairs.
func BenchmarkSquaredDist_256x8(b *testing.B) {
	s, p, q := benchFixture(b, 7, 256)
	m := s.Metric()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.SquaredDist(p, q); err != nil {
			b.Fatalf("SquaredDist failed: %v", err)
		}
	}
}
