package extract

import "sync/atomic"

// Stats counts extraction work across a run. Counters are atomic so a future
// concurrent-per-server variant can share one Stats without extra locking;
// there is no package-level instance, callers thread their own.
type Stats struct {
	filesProcessed atomic.Int64
	failedFiles    atomic.Int64
	rateLimitHits  atomic.Int64
}

func (s *Stats) AddFileProcessed() { s.filesProcessed.Add(1) }
func (s *Stats) AddFailedFile()    { s.failedFiles.Add(1) }
func (s *Stats) AddRateLimitHit()  { s.rateLimitHits.Add(1) }

func (s *Stats) FilesProcessed() int64 { return s.filesProcessed.Load() }
func (s *Stats) FailedFiles() int64    { return s.failedFiles.Load() }
func (s *Stats) RateLimitHits() int64  { return s.rateLimitHits.Load() }

// Merge folds another Stats into this one; used when workers accumulate
// privately and the caller combines afterward.
func (s *Stats) Merge(other *Stats) {
	if other == nil {
		return
	}
	s.filesProcessed.Add(other.filesProcessed.Load())
	s.failedFiles.Add(other.failedFiles.Load())
	s.rateLimitHits.Add(other.rateLimitHits.Load())
}
