package measure

import (
	"sort"
	"time"
)

// StageTime is the average cost of one stage.
type StageTime struct {
	Key      string
	Label    string
	Average  time.Duration
	Last     time.Duration
	Runs     int64
	Transfer time.Duration
}

// Slowest returns the n stages with the highest average duration, slowest first.
// A negative n returns every stage that ran at least once.
func Slowest(msr Measure, n int) []StageTime {
	times := make([]StageTime, 0)

	for key, mt := range msr.AllMetrics() {
		if mt.Runs() == 0 {
			continue
		}

		st := StageTime{
			Key:     key,
			Label:   mt.Label(),
			Average: mt.AVGDuration(),
			Last:    mt.LastDuration(),
			Runs:    mt.Runs(),
		}
		for _, info := range mt.AVGTransportDuration() {
			st.Transfer += info.Elapsed
		}
		times = append(times, st)
	}

	sort.Slice(times, func(i, j int) bool {
		if times[i].Average == times[j].Average {
			return times[i].Key < times[j].Key
		}
		return times[i].Average > times[j].Average
	})

	if n >= 0 && n < len(times) {
		times = times[:n]
	}

	return times
}
