// Package equal decides when an assigned value is the value already stored,
// so that an Assign can hand back the version it was called on.
package equal

import "reflect"

// Values reports whether a and b are the same value. Values of comparable
// types are compared with ==. Values that can not be compared (slices, maps,
// funcs, or structs holding them) are never considered equal, which only
// costs an unnecessary path copy.
func Values[V any](a, b V) bool {
	switch x := any(a).(type) {
	case nil:
		return any(b) == nil
	case int:
		y, ok := any(b).(int)
		return ok && x == y
	case int64:
		y, ok := any(b).(int64)
		return ok && x == y
	case uint32:
		y, ok := any(b).(uint32)
		return ok && x == y
	case string:
		y, ok := any(b).(string)
		return ok && x == y
	case bool:
		y, ok := any(b).(bool)
		return ok && x == y
	}

	var va, vb = reflect.ValueOf(any(a)), reflect.ValueOf(any(b))
	if !va.IsValid() || !vb.IsValid() {
		return va.IsValid() == vb.IsValid()
	}
	if va.Type() != vb.Type() || !va.Comparable() {
		return false
	}
	return va.Equal(vb)
}
