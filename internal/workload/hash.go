package workload

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hash is a CPU-bound workload: each item chains xxhash over its index for
// a fixed number of rounds.
type Hash struct {
	rounds int
}

// NewHash returns a hash workload performing rounds hashes per item.
func NewHash(rounds int) *Hash {
	if rounds <= 0 {
		rounds = 1
	}
	return &Hash{rounds: rounds}
}

// Name implements Workload.
func (h *Hash) Name() string { return "hash" }

// Description implements Workload.
func (h *Hash) Description() string {
	return fmt.Sprintf("chain %d xxhash rounds per item", h.rounds)
}

// Process implements Workload.
func (h *Hash) Process(index int) error {
	_ = h.Digest(index)
	return nil
}

// Digest returns the final hash for index. It is deterministic.
func (h *Hash) Digest(index int) uint64 {
	var buf [8]byte
	sum := uint64(index)
	for i := 0; i < h.rounds; i++ {
		binary.LittleEndian.PutUint64(buf[:], sum)
		sum = xxhash.Sum64(buf[:])
	}
	return sum
}
