package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bloomfilter/pkg/bitarray"
	"bloomfilter/pkg/hash"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Nil(t, cfg.Validate())
	assert.Equal(t, uint64(100000), cfg.Capacity)
	assert.Equal(t, uint64(4), cfg.HashCount)
	assert.Equal(t, 0.05, cfg.FalsePositiveRate)
	assert.Equal(t, hash.AlgXXH3, cfg.Hash)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode([]byte("capacity: 1000\nhash: murmur3\nbits: bitset\n"))
	require.Nil(t, err)
	assert.Equal(t, uint64(1000), cfg.Capacity)
	assert.Equal(t, uint64(4), cfg.HashCount)
	assert.Equal(t, hash.AlgMurmur3, cfg.Hash)
	assert.Equal(t, BitsBitSet, cfg.Bits)
	assert.Equal(t, "wordlist.txt", cfg.WordList)
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(nil)
	require.Nil(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeUnknownField(t *testing.T) {
	_, err := Decode([]byte("capacity: 10\nhashes: 3\n"))
	assert.NotNil(t, err)
}

func TestDecodeInvalid(t *testing.T) {
	cases := map[string]string{
		"capacity":  "capacity: 0\n",
		"hashes":    "hash_count: 0\n",
		"rate zero": "false_positive_rate: 0\n",
		"rate one":  "false_positive_rate: 1\n",
		"hash":      "hash: sha1\n",
		"bits":      "bits: bools\n",
		"log level": "log_level: loud\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc))
			assert.True(t, errors.Is(err, ErrInvalid), "%v", err)
		})
	}
}

func TestUnknownHashWrapsSentinel(t *testing.T) {
	cfg := Default()
	cfg.Hash = "crc"
	err := cfg.Validate()
	assert.True(t, errors.Is(err, hash.ErrUnknownAlgorithm))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bloom.yaml")
	require.Nil(t, os.WriteFile(path, []byte("hash_count: 7\nfalse_positive_rate: 0.01\nword_list: words.txt\n"), 0644))

	cfg, err := Load(path)
	require.Nil(t, err)
	assert.Equal(t, uint64(7), cfg.HashCount)
	assert.Equal(t, 0.01, cfg.FalsePositiveRate)
	assert.Equal(t, "words.txt", cfg.WordList)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFilterOption(t *testing.T) {
	cfg := Default()
	opt, err := cfg.FilterOption()
	require.Nil(t, err)
	assert.IsType(t, &bitarray.Bytes{}, opt.NewBits(8))
	assert.Equal(t, hash.XXH3([]byte("a"), 1), opt.Hash([]byte("a"), 1))

	cfg.Bits = BitsBitSet
	cfg.Hash = hash.AlgFNV1a
	opt, err = cfg.FilterOption()
	require.Nil(t, err)
	assert.IsType(t, &bitarray.BitSet{}, opt.NewBits(8))
	assert.Equal(t, hash.FNV1a([]byte("a"), 1), opt.Hash([]byte("a"), 1))

	cfg.Hash = "nope"
	_, err = cfg.FilterOption()
	assert.NotNil(t, err)
}
