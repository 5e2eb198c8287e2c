package bitarray

import "github.com/bits-and-blooms/bitset"

// Bytes packs bits into a byte slice, bit i lives at bits[i/8] & (1 << (i%8)).
type Bytes struct {
	bits []byte
	size uint64
}

// New returns an all-zero array of size bits.
func New(size uint64) *Bytes {
	return &Bytes{
		bits: make([]byte, (size+7)/8),
		size: size,
	}
}

func (b *Bytes) Set(idx uint64) {
	b.bits[idx/8] |= 1 << (idx % 8)
}

func (b *Bytes) Get(idx uint64) bool {
	return b.bits[idx/8]&(1<<(idx%8)) != 0
}

func (b *Bytes) Size() uint64 {
	return b.size
}

// BitSet adapts bitset.BitSet to the same fixed-size contract.
type BitSet struct {
	set  *bitset.BitSet
	size uint64
}

func NewBitSet(size uint64) *BitSet {
	return &BitSet{
		set:  bitset.New(uint(size)),
		size: size,
	}
}

// Set panics when idx is out of range instead of growing the set.
func (b *BitSet) Set(idx uint64) {
	if idx >= b.size {
		panic("bitarray: index out of range")
	}
	b.set.Set(uint(idx))
}

func (b *BitSet) Get(idx uint64) bool {
	if idx >= b.size {
		panic("bitarray: index out of range")
	}
	return b.set.Test(uint(idx))
}

func (b *BitSet) Size() uint64 {
	return b.size
}
