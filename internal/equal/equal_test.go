package equal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct{ x, y int }

func TestValues(t *testing.T) {
	assert.True(t, Values(1, 1))
	assert.False(t, Values(1, 2))
	assert.True(t, Values("a", "a"))
	assert.True(t, Values(point{1, 2}, point{1, 2}))
	assert.False(t, Values(point{1, 2}, point{2, 1}))

	var p = &point{1, 2}
	assert.True(t, Values(p, p))
	assert.False(t, Values(p, &point{1, 2}))

	// slices are not comparable, so they never short-circuit
	var s = []int{1}
	assert.False(t, Values(s, s))

	var a, b interface{}
	assert.True(t, Values(a, b))
	b = 1
	assert.False(t, Values(a, b))
	assert.False(t, Values[interface{}](1, "1"))
	assert.False(t, Values[interface{}]([]int{1}, []int{1}))
}
