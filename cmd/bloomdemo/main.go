package main

import (
	"errors"
	"fmt"
	"os"

	"bloomfilter/internal/config"
	"bloomfilter/internal/harness"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string
	flagConfig = config.Default()
)

var errMissing = errors.New("inserted words missing from filter")

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	rootCmd.Flags().Uint64Var(&flagConfig.Capacity, "capacity", flagConfig.Capacity, "Number of words to insert")
	rootCmd.Flags().Uint64Var(&flagConfig.HashCount, "hashes", flagConfig.HashCount, "Hash probes per word")
	rootCmd.Flags().Float64Var(&flagConfig.FalsePositiveRate, "rate", flagConfig.FalsePositiveRate, "Target false positive rate")
	rootCmd.Flags().StringVar(&flagConfig.Hash, "hash", flagConfig.Hash, "Hash algorithm: xxh3, fnv1a or murmur3")
	rootCmd.Flags().StringVar(&flagConfig.Bits, "bits", flagConfig.Bits, "Bit array: bytes or bitset")
	rootCmd.Flags().StringVarP(&flagConfig.WordList, "words", "w", flagConfig.WordList, "Word list, one word per line")
	rootCmd.Flags().StringVar(&flagConfig.LogLevel, "log-level", flagConfig.LogLevel, "Log level")
}

var rootCmd = &cobra.Command{
	Use:          "bloomdemo",
	Short:        "Measure a bloom filter against a word list",
	Long:         `Insert the first --capacity words of a word list, check they are all found, then probe the next --capacity words and report the observed false positive rate next to the projected one.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		return run(cfg)
	},
}

// resolveConfig loads the config file, if any, then applies the flags that
// were set explicitly.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("capacity") {
		cfg.Capacity = flagConfig.Capacity
	}
	if flags.Changed("hashes") {
		cfg.HashCount = flagConfig.HashCount
	}
	if flags.Changed("rate") {
		cfg.FalsePositiveRate = flagConfig.FalsePositiveRate
	}
	if flags.Changed("hash") {
		cfg.Hash = flagConfig.Hash
	}
	if flags.Changed("bits") {
		cfg.Bits = flagConfig.Bits
	}
	if flags.Changed("words") {
		cfg.WordList = flagConfig.WordList
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagConfig.LogLevel
	}
	return cfg, cfg.Validate()
}

func run(cfg config.Config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	opt, err := cfg.FilterOption()
	if err != nil {
		return err
	}

	fd, err := os.Open(cfg.WordList)
	if err != nil {
		return err
	}
	defer fd.Close()

	report, err := harness.Run(harness.Params{
		Capacity:          cfg.Capacity,
		HashCount:         cfg.HashCount,
		FalsePositiveRate: cfg.FalsePositiveRate,
		Option:            opt,
	}, fd)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"inserted":    report.Inserted,
		"bits_set":    report.BitsSet,
		"insert_time": report.InsertTime,
	}).Infof("projected false positive rate: %v", report.Projected)
	logrus.WithField("missing", report.Missing).Info("inserted words checked")
	logrus.WithFields(logrus.Fields{
		"probed":          report.Probed,
		"skipped":         report.Skipped,
		"false_positives": report.FalsePositives,
		"query_time":      report.QueryTime,
	}).Infof("actual false positive rate: %v", report.Actual)

	if report.Missing > 0 {
		return fmt.Errorf("%w: %d", errMissing, report.Missing)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
