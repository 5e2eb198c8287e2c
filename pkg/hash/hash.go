// Package hash provides seeded 64-bit hashes of byte keys.
//
// A filter derives its probe positions by feeding each hash value back in as
// the seed of the next one, so every Func must be deterministic in (key, seed).
package hash

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// Func hashes key combined with seed.
type Func func(key []byte, seed uint64) uint64

// Algorithm names accepted by ByName.
const (
	AlgXXH3    = "xxh3"    // Default, fastest
	AlgFNV1a   = "fnv1a"   // No external dependencies
	AlgMurmur3 = "murmur3" // 32-bit seed space
)

var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

func XXH3(key []byte, seed uint64) uint64 {
	return xxh3.HashSeed(key, seed)
}

// FNV1a hashes the little-endian seed followed by the key.
func FNV1a(key []byte, seed uint64) uint64 {
	var s [8]byte
	binary.LittleEndian.PutUint64(s[:], seed)
	h := fnv.New64a()
	h.Write(s[:])
	h.Write(key)
	return h.Sum64()
}

// Murmur3 folds the seed to 32 bits by xoring its halves.
func Murmur3(key []byte, seed uint64) uint64 {
	return murmur3.Sum64WithSeed(key, uint32(seed^(seed>>32)))
}

// ByName resolves one of the Alg* names.
func ByName(name string) (Func, error) {
	switch name {
	case AlgXXH3:
		return XXH3, nil
	case AlgFNV1a:
		return FNV1a, nil
	case AlgMurmur3:
		return Murmur3, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}
