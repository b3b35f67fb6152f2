package bank

import (
	"math/rand/v2"
	"sync"

	"github.com/cleared-dev/demobank/internal/acctnum"
)

// Registry tracks every account number issued in the process so generated
// numbers never collide. Numbers are never released, not even when an account
// is closed.
//
// Generate uses rejection sampling with no retry bound. With 9e9 candidates
// this only matters once the registry is close to exhausted.
type Registry struct {
	mu     sync.Mutex
	issued map[int64]struct{}
	rng    *rand.Rand // nil uses the auto-seeded global source
}

// NewRegistry creates an empty registry backed by the global random source.
func NewRegistry() *Registry {
	return &Registry{issued: make(map[int64]struct{})}
}

// NewSeededRegistry creates an empty registry with a deterministic source.
func NewSeededRegistry(seed1, seed2 uint64) *Registry {
	return &Registry{
		issued: make(map[int64]struct{}),
		rng:    rand.New(rand.NewPCG(seed1, seed2)),
	}
}

// Generate returns a 10-digit number not previously issued and marks it issued.
func (r *Registry) Generate() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		n := acctnum.Min + r.int64N(acctnum.Max-acctnum.Min+1)
		if _, taken := r.issued[n]; !taken {
			r.issued[n] = struct{}{}
			return n
		}
	}
}

// Register records an externally supplied number as issued. Registering a
// number twice is a no-op.
func (r *Registry) Register(n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued[n] = struct{}{}
}

// Issued reports whether n has been generated or registered.
func (r *Registry) Issued(n int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.issued[n]
	return ok
}

// Len returns the number of issued account numbers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.issued)
}

// Clear forgets every issued number. Intended for resetting state between tests.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued = make(map[int64]struct{})
}

func (r *Registry) int64N(n int64) int64 {
	if r.rng != nil {
		return r.rng.Int64N(n)
	}
	return rand.Int64N(n)
}
