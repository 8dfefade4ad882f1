// Package windows plans the sliding windows used by MAP.
package windows

import (
	"errors"
	"fmt"
	"slices"
)

var ErrInvalidConfig = errors.New("invalid window configuration")

// Config describes how windows are laid out around reference ticks.
//
// Pre and Post are time offsets when non-negative, and reading counts when negative.
// A non-zero Occurrences caps the number of readings per window; when negative, reference
// ticks are visited in descending order.
type Config struct {
	Pre         int64
	Post        int64
	Occurrences int64
	Step        int64
	Overlapping bool
	// Ticks lists the reference ticks. Nil means derive them from the series.
	Ticks []int64
}

func DefaultConfig() Config {
	return Config{
		Step: 1,
	}
}

func (c Config) Validate() error {
	if c.Step < 1 {
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidConfig, c.Step)
	}
	return nil
}

// Equal reports whether two configurations plan the same windows.
func (c Config) Equal(other Config) bool {
	return c.Pre == other.Pre &&
		c.Post == other.Post &&
		c.Occurrences == other.Occurrences &&
		c.Step == other.Step &&
		c.Overlapping == other.Overlapping &&
		slices.Equal(normalizeTicks(c.Ticks), normalizeTicks(other.Ticks)) &&
		(c.Ticks == nil) == (other.Ticks == nil)
}

func (c Config) String() string {
	ticks := "derive"
	if c.Ticks != nil {
		ticks = fmt.Sprint(c.Ticks)
	}
	return fmt.Sprintf("pre=%d post=%d occurrences=%d step=%d overlapping=%v ticks=%s",
		c.Pre, c.Post, c.Occurrences, c.Step, c.Overlapping, ticks)
}

func normalizeTicks(ticks []int64) []int64 {
	ret := slices.Clone(ticks)
	slices.Sort(ret)
	return slices.Compact(ret)
}
