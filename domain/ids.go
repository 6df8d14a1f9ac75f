package domain

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for prescriptions, folders and
// medication line items. The original implementation derived identifiers
// from the wall clock, which collides under fast successive saves; ids are
// instead produced by an injected capability so tests stay deterministic.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random UUIDv4 identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator generates monotonically increasing numeric identifiers.
// Useful in tests and anywhere reproducible ids are needed.
type SequenceGenerator struct {
	counter atomic.Uint64
}

func (g *SequenceGenerator) NewID() string {
	return strconv.FormatUint(g.counter.Add(1), 10)
}
