package cas

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// GcResult summarizes one GarbageCollect call.
type GcResult struct {
	EntriesRemoved int
	FreedSpace     int64
}

// FormatFreedSpace renders FreedSpace as a human-readable size with one
// decimal place, e.g. "3.4 MB".
func (r GcResult) FormatFreedSpace() string {
	const unit = 1024.0
	sizes := []string{"B", "KB", "MB", "GB", "TB"}

	f := float64(r.FreedSpace)
	i := 0
	for f >= unit && i < len(sizes)-1 {
		f /= unit
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d %s", r.FreedSpace, sizes[0])
	}
	return fmt.Sprintf("%.1f %s", f, sizes[i])
}

// GarbageCollect removes entries whose StoredAt is older than maxAge and
// whose hex key is not present in live. Access recency (LastAccessed)
// never exempts an entry from collection — only store time and
// liveness do. The core never infers liveness itself; the caller is
// expected to derive live from a lockfile or a resolved dependency
// graph.
func (s *Store) GarbageCollect(live map[string]struct{}, maxAge time.Duration) (GcResult, error) {
	cutoff := time.Now().Add(-maxAge).Unix()

	var toRemove []indexPair
	for _, p := range s.idx.snapshot() {
		if p.Entry.StoredAt >= cutoff {
			continue
		}
		if _, ok := live[p.Key]; ok {
			continue
		}
		toRemove = append(toRemove, p)
	}

	var result GcResult
	for _, p := range toRemove {
		h, err := ParseHash(p.Key)
		if err != nil {
			continue
		}
		path := s.pathFor(h)

		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return result, err
		}

		a, b, _ := h.ShardPath()
		os.Remove(filepath.Join(s.root, a, b))
		os.Remove(filepath.Join(s.root, a))

		s.idx.remove(p.Key)
		result.EntriesRemoved++
		result.FreedSpace += p.Entry.Size
	}

	if result.EntriesRemoved > 0 {
		if err := s.SaveIndex(); err != nil {
			return result, err
		}
	}

	return result, nil
}
