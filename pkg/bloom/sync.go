package bloom

import "sync"

// SyncFilter serializes access to a Filter: inserts are exclusive, reads may
// run together.
type SyncFilter struct {
	sync.RWMutex
	f *Filter
}

func NewSync(f *Filter) *SyncFilter {
	return &SyncFilter{f: f}
}

func (s *SyncFilter) Insert(key []byte) {
	s.Lock()
	defer s.Unlock()
	s.f.Insert(key)
}

func (s *SyncFilter) Find(key []byte) bool {
	s.RLock()
	defer s.RUnlock()
	return s.f.Find(key)
}

func (s *SyncFilter) FalsePositiveRate() float64 {
	s.RLock()
	defer s.RUnlock()
	return s.f.FalsePositiveRate()
}

func (s *SyncFilter) NumBitsSet() uint64 {
	s.RLock()
	defer s.RUnlock()
	return s.f.NumBitsSet()
}
