// Package harness drives a filter over a word list: it inserts the first
// Capacity words, checks they are all found, then probes the next Capacity
// words and measures how many are falsely reported present.
package harness

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"bloomfilter/pkg/bloom"

	"github.com/huandu/skiplist"
	"github.com/sirupsen/logrus"
)

type Params struct {
	Capacity          uint64
	HashCount         uint64
	FalsePositiveRate float64
	Option            bloom.Option
}

type Report struct {
	Inserted uint64
	BitsSet  uint64

	// estimate from the bits set after all inserts
	Projected float64

	// inserted words the filter does not find, always 0
	Missing uint64

	Probed         uint64
	Skipped        uint64
	FalsePositives uint64
	Actual         float64

	InsertTime time.Duration
	QueryTime  time.Duration
}

// Run reads words one per line. A list shorter than 2*Capacity lines is not an
// error, the counts reflect what was read.
func Run(params Params, words io.Reader) (*Report, error) {
	f, err := bloom.NewWithOption(params.Capacity, params.HashCount, params.FalsePositiveRate, params.Option)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(words)
	// exact set of inserted words, to tell false positives from repeated words
	inserted := skiplist.New(skiplist.String)
	report := &Report{}

	start := time.Now()
	for report.Inserted < params.Capacity {
		word, ok := nextWord(scanner)
		if !ok {
			break
		}
		f.Insert([]byte(word))
		inserted.Set(word, struct{}{})
		report.Inserted++
	}
	report.InsertTime = time.Since(start)
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	report.BitsSet = f.NumBitsSet()
	report.Projected = f.FalsePositiveRate()
	logrus.Debugf("inserted %d words (%d distinct), %d bits set, projected rate %v",
		report.Inserted, inserted.Len(), report.BitsSet, report.Projected)

	start = time.Now()
	for elem := inserted.Front(); elem != nil; elem = elem.Next() {
		if !f.Find([]byte(elem.Key().(string))) {
			report.Missing++
		}
	}
	logrus.Debugf("%d inserted words missing", report.Missing)

	var read uint64
	for read < params.Capacity {
		word, ok := nextWord(scanner)
		if !ok {
			break
		}
		read++
		if inserted.Get(word) != nil {
			report.Skipped++
			continue
		}
		report.Probed++
		if f.Find([]byte(word)) {
			report.FalsePositives++
		}
	}
	report.QueryTime = time.Since(start)
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	if report.Probed > 0 {
		report.Actual = float64(report.FalsePositives) / float64(report.Probed)
	}
	logrus.Debugf("probed %d words, skipped %d, %d false positives", report.Probed, report.Skipped, report.FalsePositives)
	return report, nil
}

// nextWord skips empty lines.
func nextWord(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		if word := scanner.Text(); word != "" {
			return word, true
		}
	}
	return "", false
}
