package soak

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lleo/go-functional-collections/btreelist"
	"github.com/lleo/go-functional-collections/trie32"
)

// Timing is the time one contender took to append every value.
type Timing struct {
	Name    string
	Count   int
	Elapsed time.Duration
}

// AppendTiming times appending count values, loops times over, to a
// btreelist.List, to a trie32.Array used as a list, and to a Go slice. The
// result has one Timing per contender with the elapsed times summed over
// the loops. It stops early, returning what it measured so far, when ctx
// is done.
func AppendTiming(ctx context.Context, count, loops int, log *zap.Logger) []Timing {
	if log == nil {
		log = zap.NewNop()
	}

	var contenders = []struct {
		name string
		fn   func(count int)
	}{
		{"btreelist", appendList},
		{"trie32", appendArray},
		{"slice", appendSlice},
	}

	var timings = make([]Timing, len(contenders))
	for i, c := range contenders {
		timings[i] = Timing{Name: c.name, Count: count}
	}

	for loop := 0; loop < loops; loop++ {
		for i, c := range contenders {
			if ctx.Err() != nil {
				return timings
			}
			var start = time.Now()
			c.fn(count)
			var elapsed = time.Since(start)
			timings[i].Elapsed += elapsed
			log.Debug("append timing", zap.String("name", c.name), zap.Int("loop", loop), zap.Duration("elapsed", elapsed))
		}
	}
	return timings
}

func appendList(count int) {
	var list btreelist.List[int]
	for i := 0; i < count; i++ {
		list = list.Append(i)
	}
}

func appendArray(count int) {
	var arr trie32.Array[int]
	for i := 0; i < count; i++ {
		arr = arr.Assign(uint32(arr.Size()), i)
	}
}

func appendSlice(count int) {
	var s []int
	for i := 0; i < count; i++ {
		s = append(s, i)
	}
	_ = s
}
