// Package soak drives the persistent collections with long randomized
// workloads, checking each against a plain Go (or google/btree) oracle and
// against its own CheckInvariants after every phase.
package soak

import (
	"context"
	"iter"
	"math/rand"
	"strconv"

	"github.com/google/btree"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lleo/go-functional-collections/btreelist"
	"github.com/lleo/go-functional-collections/btreemap"
	"github.com/lleo/go-functional-collections/hamt32"
	"github.com/lleo/go-functional-collections/trie32"
)

// ErrMismatch is returned, wrapped with the details, when a collection
// disagrees with its oracle.
var ErrMismatch = errors.New("collection disagrees with oracle")

// Config controls a soak run.
type Config struct {
	// Seed for the random source. Runs with equal Configs do the same work.
	Seed int64
	// Iterations is the number of rounds to run; 0 runs until the context
	// is cancelled.
	Iterations int
	// MaxSize bounds the number of elements a round grows a collection to.
	MaxSize int
}

// DefaultMaxSize is used when Config.MaxSize is not positive.
const DefaultMaxSize = 10000

// growLoops is the number of grow/shrink phases in each round.
const growLoops = 6

// Runner executes soak rounds. A Runner is not safe for concurrent use.
type Runner struct {
	cfg    Config
	random *rand.Rand
	log    *zap.Logger
}

// NewRunner returns a Runner for cfg logging to log. A nil log discards.
func NewRunner(cfg Config, log *zap.Logger) *Runner {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		random: rand.New(rand.NewSource(cfg.Seed)),
		log:    log,
	}
}

// Run executes rounds until the iteration budget is spent or ctx is done.
// Cancellation ends the run early without an error. The first oracle
// mismatch or invariant violation ends the run with an error.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("soak starting", zap.Int64("seed", r.cfg.Seed),
		zap.Int("iterations", r.cfg.Iterations), zap.Int("maxSize", r.cfg.MaxSize))

	var steps = []struct {
		name string
		fn   func() error
	}{
		{"btreelist", r.testList},
		{"trie32", r.testArray},
		{"btreemap", r.testSortedMap},
		{"hamt32/list", func() error { return r.testHashMap(hamt32.UsingList[string, int](nil)) }},
		{"hamt32/tree", func() error { return r.testHashMap(hamt32.New[string, int](nil)) }},
	}

	for round := 1; r.cfg.Iterations == 0 || round <= r.cfg.Iterations; round++ {
		for _, step := range steps {
			if ctx.Err() != nil {
				r.log.Info("soak stopped", zap.Int("round", round), zap.Error(ctx.Err()))
				return nil
			}
			if err := step.fn(); err != nil {
				r.log.Error("soak failed", zap.Int("round", round), zap.String("step", step.name), zap.Error(err))
				return errors.WithMessagef(err, "round %d, step %s", round, step.name)
			}
		}
		r.log.Info("soak round completed", zap.Int("round", round))
	}
	return nil
}

func mismatchf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMismatch, format, args...)
}

func (r *Runner) testList() error {
	var size = r.random.Intn(r.cfg.MaxSize)
	var list btreelist.List[int]
	var expected []int
	r.log.Debug("testing btreelist", zap.Int("size", size))

	for loop := 0; loop < growLoops; loop++ {
		for i := 0; i < size/3; i++ {
			var value = r.random.Intn(999999999)
			var index = r.random.Intn(len(expected) + 1)
			var err error
			if list, err = list.Insert(index, value); err != nil {
				return err
			}
			expected = append(expected, 0)
			copy(expected[index+1:], expected[index:])
			expected[index] = value
		}
		if err := verifyList(expected, list); err != nil {
			return err
		}

		for i := 0; i < size/6 && len(expected) > 0; i++ {
			var index = r.random.Intn(len(expected))
			var err error
			if list, err = list.Delete(index); err != nil {
				return err
			}
			expected = append(expected[:index], expected[index+1:]...)
		}
		if err := verifyList(expected, list); err != nil {
			return err
		}
	}

	for !list.IsEmpty() {
		var err error
		if list, err = list.Delete(0); err != nil {
			return err
		}
	}
	if list != (btreelist.List[int]{}) {
		return mismatchf("btreelist: emptied list is not the zero value")
	}
	return nil
}

func verifyList(expected []int, list btreelist.List[int]) error {
	if err := list.CheckInvariants(); err != nil {
		return err
	}
	if list.Size() != len(expected) {
		return mismatchf("btreelist: size %d, expected %d", list.Size(), len(expected))
	}
	for i, v := range list.All() {
		if expected[i] != v {
			return mismatchf("btreelist: index %d holds %d, expected %d", i, v, expected[i])
		}
	}
	return nil
}

func (r *Runner) testArray() error {
	var size = r.random.Intn(r.cfg.MaxSize)
	var arr trie32.Array[int]
	var expected = make(map[uint32]int)
	r.log.Debug("testing trie32", zap.Int("size", size))

	var randomIndex = func() uint32 {
		// mix dense low indexes with sparse ones across the whole range
		if r.random.Intn(2) == 0 {
			return uint32(r.random.Intn(size + 1))
		}
		return r.random.Uint32()
	}

	for loop := 0; loop < growLoops; loop++ {
		for i := 0; i < size/3; i++ {
			var index, value = randomIndex(), r.random.Int()
			arr = arr.Assign(index, value)
			expected[index] = value
		}
		if err := verifyArray(expected, arr); err != nil {
			return err
		}

		var n int
		for index := range expected {
			if n >= size/6 {
				break
			}
			arr = arr.Delete(index)
			delete(expected, index)
			n++
		}
		if err := verifyArray(expected, arr); err != nil {
			return err
		}
	}

	for index := range expected {
		arr = arr.Delete(index)
	}
	if arr != (trie32.Array[int]{}) {
		return mismatchf("trie32: emptied array is not the zero value")
	}
	return nil
}

func verifyArray(expected map[uint32]int, arr trie32.Array[int]) error {
	if err := arr.CheckInvariants(); err != nil {
		return err
	}
	if arr.Size() != len(expected) {
		return mismatchf("trie32: size %d, expected %d", arr.Size(), len(expected))
	}
	for index, want := range expected {
		if got, found := arr.Get(index); !found || got != want {
			return mismatchf("trie32: index %d holds %d (found %t), expected %d", index, got, found, want)
		}
	}
	return nil
}

type token struct {
	key   string
	value int
}

func tokenLess(a, b token) bool {
	return a.key < b.key
}

func (r *Runner) randomToken(size int) string {
	return "t" + strconv.Itoa(r.random.Intn(size*2+1))
}

func (r *Runner) testSortedMap() error {
	var size = r.random.Intn(r.cfg.MaxSize)
	var m = btreemap.NewOrdered[string, int]()
	var empty = m
	var expected = btree.NewG[token](16, tokenLess)
	r.log.Debug("testing btreemap", zap.Int("size", size))

	for loop := 0; loop < growLoops; loop++ {
		for i := 0; i < size/3; i++ {
			var t = token{r.randomToken(size), r.random.Int()}
			m = m.Assign(t.key, t.value)
			expected.ReplaceOrInsert(t)
		}
		if err := verifySortedMap(expected, m); err != nil {
			return err
		}

		for i := 0; i < size/6; i++ {
			var key = r.randomToken(size)
			m = m.Delete(key)
			expected.Delete(token{key: key})
		}
		if err := verifySortedMap(expected, m); err != nil {
			return err
		}
	}

	expected.Ascend(func(t token) bool {
		m = m.Delete(t.key)
		return true
	})
	if m != empty {
		return mismatchf("btreemap: emptied map is not the empty map")
	}
	return nil
}

func verifySortedMap(expected *btree.BTreeG[token], m btreemap.Map[string, int]) error {
	if err := m.CheckInvariants(); err != nil {
		return err
	}
	if m.Size() != expected.Len() {
		return mismatchf("btreemap: size %d, expected %d", m.Size(), expected.Len())
	}

	var next, stop = iter.Pull2(m.All())
	defer stop()

	var err error
	expected.Ascend(func(t token) bool {
		var k, v, ok = next()
		if !ok || k != t.key || v != t.value {
			err = mismatchf("btreemap: got %s=%d (ok %t), expected %s=%d", k, v, ok, t.key, t.value)
			return false
		}
		return true
	})
	return err
}

func (r *Runner) testHashMap(m hamt32.Map[string, int]) error {
	var size = r.random.Intn(r.cfg.MaxSize)
	var expected = make(map[string]int)
	r.log.Debug("testing hamt32", zap.Int("size", size), zap.Stringer("strategy", m.Strategy()))

	for loop := 0; loop < growLoops; loop++ {
		for i := 0; i < size/3; i++ {
			var key, value = r.randomToken(size), r.random.Int()
			m = m.Assign(key, value)
			expected[key] = value
		}
		if err := verifyHashMap(expected, m); err != nil {
			return err
		}

		for i := 0; i < size/6; i++ {
			var key = r.randomToken(size)
			m = m.Delete(key)
			delete(expected, key)
		}
		if err := verifyHashMap(expected, m); err != nil {
			return err
		}
	}

	for key := range expected {
		m = m.Delete(key)
	}
	if !m.IsEmpty() || m.Size() != 0 {
		return mismatchf("hamt32: emptied map still holds %d keys", m.Size())
	}
	return nil
}

func verifyHashMap(expected map[string]int, m hamt32.Map[string, int]) error {
	if err := m.CheckInvariants(); err != nil {
		return err
	}
	if m.Size() != len(expected) {
		return mismatchf("hamt32: size %d, expected %d", m.Size(), len(expected))
	}
	var seen int
	for k, v := range m.All() {
		if want, ok := expected[k]; !ok || want != v {
			return mismatchf("hamt32: %s=%d, expected %d (present %t)", k, v, want, ok)
		}
		seen++
	}
	if seen != len(expected) {
		return mismatchf("hamt32: iterated %d keys, expected %d", seen, len(expected))
	}
	return nil
}
