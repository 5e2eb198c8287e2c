package bloom

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Filter is a Bloom filter sized from an expected key count, a number of hash
// probes and a target false positive rate. It never reports a false negative.
//
// A Filter is not safe for concurrent use, see SyncFilter.
type Filter struct {
	bits Bits
	hash HashFunc

	// expected number of keys
	n uint64

	// number of hash probes per key
	k uint64

	// target false positive rate at n keys
	p float64

	// bit array size
	m uint64

	// bits flipped from 0 to 1 so far
	bitsSet uint64
}

// bitsNeeded returns the number of bits that holds n keys with k probes each at
// false positive rate p.
//
// phi, the fraction of bits still 0 once n keys are in, follows from
// p = (1-phi)^k. Solving phi = (1-1/m)^(k*n) exactly for m gives
// m = k / (1 - phi^(1/n)).
func bitsNeeded(n, k uint64, p float64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("%w: capacity must be positive", ErrInvalidConfiguration)
	}
	if k == 0 {
		return 0, fmt.Errorf("%w: hash count must be positive", ErrInvalidConfiguration)
	}
	if !(p > 0 && p < 1) {
		return 0, fmt.Errorf("%w: false positive rate %v not in (0, 1)", ErrInvalidConfiguration, p)
	}

	phi := 1 - math.Pow(p, 1/float64(k))
	m := math.Round(float64(k) / (1 - math.Pow(phi, 1/float64(n))))
	if math.IsNaN(m) || math.IsInf(m, 0) || m >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: %d keys at rate %v needs too many bits", ErrInvalidConfiguration, n, p)
	}
	if m < 1 {
		return 0, fmt.Errorf("%w: computed size %v", ErrInvalidConfiguration, m)
	}
	return uint64(m), nil
}

// New creates a filter for capacity keys, hashCount probes per key and the
// given target false positive rate, using DefaultOptions.
func New(capacity, hashCount uint64, falsePositiveRate float64) (*Filter, error) {
	return NewWithOption(capacity, hashCount, falsePositiveRate, DefaultOptions)
}

func NewWithOption(capacity, hashCount uint64, falsePositiveRate float64, option Option) (*Filter, error) {
	m, err := bitsNeeded(capacity, hashCount, falsePositiveRate)
	if err != nil {
		return nil, err
	}
	option = option.withDefaults()

	bits := option.NewBits(m)
	if bits == nil || bits.Size() != m {
		return nil, fmt.Errorf("%w: bit array does not hold %d bits", ErrInvalidConfiguration, m)
	}
	logrus.Debugf("new bloom filter, n=%d, k=%d, p=%v, m=%d", capacity, hashCount, falsePositiveRate, m)

	return &Filter{
		bits: bits,
		hash: option.Hash,
		n:    capacity,
		k:    hashCount,
		p:    falsePositiveRate,
		m:    m,
	}, nil
}

// indexes returns the k probe positions of key. The first value is seeded with 0,
// every later one is seeded with the raw value before it.
func (f *Filter) indexes(key []byte) []uint64 {
	idx := make([]uint64, f.k)
	h := f.hash(key, 0)
	idx[0] = h % f.m
	for i := uint64(1); i < f.k; i++ {
		h = f.hash(key, h)
		idx[i] = h % f.m
	}
	return idx
}

// Insert adds key to the filter. Inserting a key again changes nothing.
func (f *Filter) Insert(key []byte) {
	for _, idx := range f.indexes(key) {
		if !f.bits.Get(idx) {
			f.bitsSet++
		}
		f.bits.Set(idx)
	}
}

// Find reports false if key was definitely never inserted, and true if it
// may have been.
func (f *Filter) Find(key []byte) bool {
	for _, idx := range f.indexes(key) {
		if !f.bits.Get(idx) {
			return false
		}
	}
	return true
}

// FalsePositiveRate estimates the current false positive rate from the bits
// actually set, which differs from the target when the filter holds more or
// fewer keys than its capacity.
func (f *Filter) FalsePositiveRate() float64 {
	phi := float64(f.m-f.bitsSet) / float64(f.m)
	return math.Pow(1-phi, float64(f.k))
}

// NumBitsSet returns how many bits are 1.
func (f *Filter) NumBitsSet() uint64 {
	return f.bitsSet
}
