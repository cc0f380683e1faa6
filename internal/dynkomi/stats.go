package dynkomi

import "sync"

// Snapshot is a point-in-time view of a running statistic.
type Snapshot struct {
	Value    float64 // running mean
	Playouts int
}

// Stats is a running mean fed by playout workers. Add is safe for
// concurrent use; Drain is called by the per-move decision with no
// playouts in flight.
type Stats struct {
	mu       sync.Mutex
	value    float64
	playouts int
}

// Add folds one playout result into the mean.
func (s *Stats) Add(result float64) {
	s.mu.Lock()
	s.playouts++
	s.value += (result - s.value) / float64(s.playouts)
	s.mu.Unlock()
}

// Snapshot returns the current mean and playout count.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Value: s.value, Playouts: s.playouts}
}

// Drain returns the current snapshot and almost-resets the statistic:
// the mean is kept with a weight of one playout, so fresh results
// quickly dominate without starting from an empty sample.
func (s *Stats) Drain() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{Value: s.value, Playouts: s.playouts}
	s.playouts = 1
	return snap
}

// Reset clears the statistic completely.
func (s *Stats) Reset() {
	s.mu.Lock()
	s.value, s.playouts = 0, 0
	s.mu.Unlock()
}

// Statistics holds the running playout statistics a strategy reads.
// Both are kept from Black's point of view: Score is the mean final
// margin with current komi applied, Value the mean win rate.
type Statistics struct {
	Score Stats
	Value Stats
}

// Record adds one finished playout to both statistics.
func (st *Statistics) Record(score float64, win bool) {
	st.Score.Add(score)
	if win {
		st.Value.Add(1)
	} else {
		st.Value.Add(0)
	}
}
