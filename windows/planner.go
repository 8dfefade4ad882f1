package windows

import (
	"iter"
	"math"
	"slices"
	"sort"

	"github.com/reusee/gtscript/gts"
)

// Window is one planned window.
type Window struct {
	Tick int64
	// Low and High are inclusive; math.MinInt64 and math.MaxInt64 when unbounded.
	Low         int64
	High        int64
	LowBounded  bool
	HighBounded bool
	// MaxOccurrences is zero when uncapped.
	MaxOccurrences int64
	// Candidates in ascending tick order.
	Candidates []gts.Reading
}

// ReferenceTicks returns the reference ticks in iteration order.
func ReferenceTicks(sorted []gts.Reading, cfg Config) []int64 {
	var ticks []int64
	switch {

	case cfg.Ticks != nil:
		ticks = normalizeTicks(cfg.Ticks)

	case len(sorted) == 0:
		return nil

	case cfg.Step <= 1:
		ticks = make([]int64, len(sorted))
		for i, r := range sorted {
			ticks[i] = r.Tick
		}

	default:
		first := sorted[0].Tick
		last := sorted[len(sorted)-1].Tick
		for t := first; t <= last; t += cfg.Step {
			ticks = append(ticks, t)
			if t > math.MaxInt64-cfg.Step {
				break
			}
		}

	}

	if cfg.Occurrences < 0 {
		slices.Reverse(ticks)
	}
	return ticks
}

// Plan yields one window per reference tick. sorted must be ordered by tick with distinct ticks.
func Plan(sorted []gts.Reading, cfg Config) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		var claimed []bool
		if !cfg.Overlapping {
			claimed = make([]bool, len(sorted))
		}
		maxOccurrences := cfg.Occurrences
		if maxOccurrences < 0 {
			maxOccurrences = -maxOccurrences
		}

		for _, tick := range ReferenceTicks(sorted, cfg) {
			window := Window{
				Tick:           tick,
				Low:            math.MinInt64,
				High:           math.MaxInt64,
				MaxOccurrences: maxOccurrences,
			}

			// [from, anchor) before the tick, [after, to) after it
			anchor := sort.Search(len(sorted), func(i int) bool {
				return sorted[i].Tick >= tick
			})
			after := anchor
			hasAnchor := anchor < len(sorted) && sorted[anchor].Tick == tick
			if hasAnchor {
				after++
			}

			var before []int
			if cfg.Pre >= 0 {
				window.Low = saturatingSub(tick, cfg.Pre)
				window.LowBounded = true
				from := sort.Search(anchor, func(i int) bool {
					return sorted[i].Tick >= window.Low
				})
				// nearest first
				for i := anchor - 1; i >= from; i-- {
					if claimed == nil || !claimed[i] {
						before = append(before, i)
					}
				}
			} else {
				for i := anchor - 1; i >= 0 && int64(len(before)) < -cfg.Pre; i-- {
					if claimed == nil || !claimed[i] {
						before = append(before, i)
					}
				}
			}

			var following []int
			if cfg.Post >= 0 {
				window.High = saturatingAdd(tick, cfg.Post)
				window.HighBounded = true
				to := sort.Search(len(sorted), func(i int) bool {
					return sorted[i].Tick > window.High
				})
				for i := after; i < to; i++ {
					if claimed == nil || !claimed[i] {
						following = append(following, i)
					}
				}
			} else {
				for i := after; i < len(sorted) && int64(len(following)) < -cfg.Post; i++ {
					if claimed == nil || !claimed[i] {
						following = append(following, i)
					}
				}
			}

			var picked []int
			if hasAnchor && (claimed == nil || !claimed[anchor]) {
				picked = append(picked, anchor)
			}
			picked = append(picked, nearestFirst(sorted, tick, before, following)...)
			if maxOccurrences > 0 && int64(len(picked)) > maxOccurrences {
				picked = picked[:maxOccurrences]
			}
			slices.Sort(picked)

			window.Candidates = make([]gts.Reading, 0, len(picked))
			for _, i := range picked {
				window.Candidates = append(window.Candidates, sorted[i])
				if claimed != nil {
					claimed[i] = true
				}
			}

			if !yield(window) {
				return
			}
		}
	}
}

// nearestFirst merges indexes on both sides of tick by distance, the earlier reading winning ties.
func nearestFirst(sorted []gts.Reading, tick int64, before, following []int) []int {
	ret := make([]int, 0, len(before)+len(following))
	i, j := 0, 0
	for i < len(before) && j < len(following) {
		// distances may overflow int64; compare as unsigned
		db := uint64(tick) - uint64(sorted[before[i]].Tick)
		df := uint64(sorted[following[j]].Tick) - uint64(tick)
		if db <= df {
			ret = append(ret, before[i])
			i++
		} else {
			ret = append(ret, following[j])
			j++
		}
	}
	ret = append(ret, before[i:]...)
	ret = append(ret, following[j:]...)
	return ret
}

func saturatingSub(a, b int64) int64 {
	if b > 0 && a < math.MinInt64+b {
		return math.MinInt64
	}
	return a - b
}

func saturatingAdd(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
