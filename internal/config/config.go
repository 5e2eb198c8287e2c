package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"bloomfilter/pkg/bitarray"
	"bloomfilter/pkg/bloom"
	"bloomfilter/pkg/hash"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	BitsBytes  = "bytes"
	BitsBitSet = "bitset"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Capacity          uint64  `yaml:"capacity"`
	HashCount         uint64  `yaml:"hash_count"`
	FalsePositiveRate float64 `yaml:"false_positive_rate"`

	// one of the hash.Alg* names
	Hash string `yaml:"hash"`

	// bytes or bitset
	Bits string `yaml:"bits"`

	WordList string `yaml:"word_list"`
	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Capacity:          100000,
		HashCount:         4,
		FalsePositiveRate: 0.05,
		Hash:              hash.AlgXXH3,
		Bits:              BitsBytes,
		WordList:          "wordlist.txt",
		LogLevel:          "info",
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Decode(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// an empty document leaves the defaults
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Capacity == 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalid)
	}
	if c.HashCount == 0 {
		return fmt.Errorf("%w: hash_count must be positive", ErrInvalid)
	}
	if !(c.FalsePositiveRate > 0 && c.FalsePositiveRate < 1) {
		return fmt.Errorf("%w: false_positive_rate %v not in (0, 1)", ErrInvalid, c.FalsePositiveRate)
	}
	if _, err := hash.ByName(c.Hash); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Bits != BitsBytes && c.Bits != BitsBitSet {
		return fmt.Errorf("%w: bits %q, want %s or %s", ErrInvalid, c.Bits, BitsBytes, BitsBitSet)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// FilterOption turns the hash and bits names into a bloom.Option.
func (c Config) FilterOption() (bloom.Option, error) {
	h, err := hash.ByName(c.Hash)
	if err != nil {
		return bloom.Option{}, err
	}
	opt := bloom.Option{Hash: h}
	switch c.Bits {
	case BitsBytes:
		opt.NewBits = func(size uint64) bloom.Bits { return bitarray.New(size) }
	case BitsBitSet:
		opt.NewBits = func(size uint64) bloom.Bits { return bitarray.NewBitSet(size) }
	default:
		return bloom.Option{}, fmt.Errorf("%w: bits %q", ErrInvalid, c.Bits)
	}
	return opt, nil
}
