package collections

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/exp/constraints"
)

// Comparer orders keys for the sorted structures.
type Comparer[K any] interface {
	// Compare returns a negative number if a sorts before b, a positive
	// number if a sorts after b, and 0 if they are equal.
	Compare(a, b K) int
}

// OrderedComparer is the Comparer for any type supporting the < operator.
// It is a zero size value, so two OrderedComparers of the same type are
// always equal.
type OrderedComparer[K constraints.Ordered] struct{}

func (OrderedComparer[K]) Compare(a, b K) int {
	return compareOrdered(a, b)
}

func compareOrdered[K constraints.Ordered](a, b K) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// DefaultComparer returns a built-in Comparer for int-ish and string-ish
// keys, including named types whose underlying kind is one of those. The
// bool is false when no built-in Comparer applies to key's type.
func DefaultComparer[K any](key K) (Comparer[K], bool) {
	switch any(key).(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr, float32, float64, string:
		return builtinComparer[K]{}, true
	}

	var t = reflect.TypeOf(any(key))
	if t == nil {
		return nil, false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.String:
		return reflectComparer[K]{}, true
	}
	return nil, false
}

// NewComparer is DefaultComparer for callers that can not continue without
// a Comparer. It panics when key's type has no built-in Comparer.
func NewComparer[K any](key K) Comparer[K] {
	var c, ok = DefaultComparer(key)
	if !ok {
		panic(fmt.Sprintf("collections.NewComparer: must set comparer for %T type", key))
	}
	return c
}

type builtinComparer[K any] struct{}

func (builtinComparer[K]) Compare(a, b K) int {
	switch x := any(a).(type) {
	case int:
		return compareOrdered(x, any(b).(int))
	case int8:
		return compareOrdered(x, any(b).(int8))
	case int16:
		return compareOrdered(x, any(b).(int16))
	case int32:
		return compareOrdered(x, any(b).(int32))
	case int64:
		return compareOrdered(x, any(b).(int64))
	case uint:
		return compareOrdered(x, any(b).(uint))
	case uint8:
		return compareOrdered(x, any(b).(uint8))
	case uint16:
		return compareOrdered(x, any(b).(uint16))
	case uint32:
		return compareOrdered(x, any(b).(uint32))
	case uint64:
		return compareOrdered(x, any(b).(uint64))
	case uintptr:
		return compareOrdered(x, any(b).(uintptr))
	case float32:
		return compareOrdered(x, any(b).(float32))
	case float64:
		return compareOrdered(x, any(b).(float64))
	case string:
		return strings.Compare(x, any(b).(string))
	}
	panic(fmt.Sprintf("collections.builtinComparer: unsupported %T type", a))
}

type reflectComparer[K any] struct{}

func (reflectComparer[K]) Compare(a, b K) int {
	var va, vb = reflect.ValueOf(any(a)), reflect.ValueOf(any(b))
	switch va.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return compareOrdered(va.Int(), vb.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return compareOrdered(va.Uint(), vb.Uint())
	case reflect.Float32, reflect.Float64:
		return compareOrdered(va.Float(), vb.Float())
	case reflect.String:
		return strings.Compare(va.String(), vb.String())
	}
	panic(fmt.Sprintf("collections.reflectComparer: unsupported %T type", a))
}
