package preorder

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces order identifiers. Implementations must be safe
// for concurrent use and must not block on I/O.
type IDGenerator interface {
	NextID() string
}

// UUIDGenerator returns random UUIDv4 identifiers. Collision
// probability is negligible (~2^-122 per pair).
type UUIDGenerator struct{}

func (UUIDGenerator) NextID() string {
	return uuid.NewString()
}

// CompositeGenerator returns identifiers in the form
// ORD_YYYYMMDD_xxxxxxxxxxxx with a 12-hex-char random suffix. The date
// prefix keeps identifiers human-sortable; the 48-bit suffix makes a
// same-day collision vanishingly unlikely.
type CompositeGenerator struct{}

func (CompositeGenerator) NextID() string {
	var suffix [6]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		// crypto/rand on supported platforms never fails; fall back to
		// a UUID rather than return a zero suffix.
		return uuid.NewString()
	}
	return fmt.Sprintf("ORD_%s_%s", time.Now().UTC().Format("20060102"), hex.EncodeToString(suffix[:]))
}

// NewIDGenerator returns the generator for the named strategy
func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strategy {
	case "", "uuid":
		return UUIDGenerator{}, nil
	case "composite":
		return CompositeGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy: %s", strategy)
	}
}
