// Package sequence decides which queue index plays next or previous under
// shuffle and repeat modes, and formats track times for display.
//
// Every function here is pure: it reads its arguments and returns a value.
// Queue, index and shuffle history are owned by the caller.
package sequence

import (
	"errors"
	"math/rand/v2"

	"github.com/samber/lo"
)

// End is returned by NextIndex when playback should stop.
const End = -1

// ErrUnknownRepeatMode is returned by ParseRepeatMode.
var ErrUnknownRepeatMode = errors.New("unknown repeat mode")

// RandFunc returns a pseudo-random float in [0, 1).
type RandFunc func() float64

type options struct {
	rand RandFunc
}

// Option configures NextIndex.
type Option func(*options)

// WithRand sets the random source used by the shuffle branch.
// A nil source keeps the default.
func WithRand(fn RandFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.rand = fn
		}
	}
}

// NextIndex returns the index to play after current, or End.
//
// RepeatOne always returns current. With shuffle, the pick is uniform among
// indices not in history; once history holds length-1 or more entries the
// exclusion is dropped and any index may be picked. Otherwise playback is
// sequential and wraps only under RepeatAll.
//
// history is never modified; the caller records the accepted index.
func NextIndex(current, length int, mode RepeatMode, shuffle bool, history []int, opts ...Option) int {
	if mode == RepeatOne {
		return current
	}

	if shuffle {
		o := options{rand: rand.Float64}
		for _, opt := range opts {
			opt(&o)
		}
		return pickShuffled(length, history, o.rand)
	}

	next := current + 1
	if next >= length {
		if mode == RepeatAll {
			return 0
		}
		return End
	}
	return next
}

func pickShuffled(length int, history []int, rnd RandFunc) int {
	candidates := lo.Range(max(length, 0))
	if len(history) < length-1 {
		seen := lo.SliceToMap(history, func(i int) (int, struct{}) {
			return i, struct{}{}
		})
		candidates = lo.Reject(candidates, func(i int, _ int) bool {
			_, ok := seen[i]
			return ok
		})
	}
	if len(candidates) == 0 {
		return 0
	}

	pick := int(rnd() * float64(len(candidates)))
	// Guard against sources that return exactly 1 or a negative value.
	pick = min(max(pick, 0), len(candidates)-1)
	return candidates[pick]
}

// PreviousIndex returns current-1, clamped to 0. It never wraps and ignores
// shuffle and repeat. length is unused and kept so both directions share a
// shape.
func PreviousIndex(current, length int) int {
	_ = length
	return max(current-1, 0)
}
