package bloom

import (
	"bloomfilter/pkg/bitarray"
	"bloomfilter/pkg/hash"
)

// Bits is the fixed-size bit storage behind a filter. All bits start at 0.
type Bits interface {
	Get(idx uint64) bool
	Set(idx uint64)
	Size() uint64
}

// HashFunc hashes key combined with seed. It must be deterministic.
type HashFunc = hash.Func

type Option struct {
	Hash HashFunc

	// NewBits allocates the bit array once the size is known
	NewBits func(size uint64) Bits
}

var DefaultOptions = Option{
	Hash:    hash.XXH3,
	NewBits: func(size uint64) Bits { return bitarray.New(size) },
}

func (o Option) withDefaults() Option {
	if o.Hash == nil {
		o.Hash = DefaultOptions.Hash
	}
	if o.NewBits == nil {
		o.NewBits = DefaultOptions.NewBits
	}
	return o
}
