package hamt32

import (
	"bytes"
	"fmt"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Hasher supplies the hash that routes a key through the trie and the
// equality that tells colliding keys apart. Keys that are Equal must have
// the same Hash.
type Hasher[K any] interface {
	Hash(key K) uint32
	Equal(a, b K) bool
}

// NewHasher returns the default Hasher for K. Integers are folded from their
// 64 bit value, floats from their bits with -0 hashed as 0, strings and byte
// slices are hashed with xxhash, and named types are hashed by their
// underlying kind. Structs, arrays and interfaces are hashed from their
// parts, pointers and channels by address. The key argument is only used
// for its type.
func NewHasher[K any](key K) Hasher[K] {
	return defaultHasher[K]{}
}

type defaultHasher[K any] struct{}

func fold64(u uint64) uint32 {
	return uint32(u ^ u>>32)
}

func (defaultHasher[K]) Hash(key K) uint32 {
	switch k := any(key).(type) {
	case int:
		return fold64(uint64(k))
	case int64:
		return fold64(uint64(k))
	case int32:
		return uint32(k)
	case uint:
		return fold64(uint64(k))
	case uint64:
		return fold64(k)
	case uint32:
		return k
	case float64:
		return hashFloat(k)
	case float32:
		return hashFloat(float64(k))
	case string:
		return fold64(xxhash.Sum64String(k))
	case []byte:
		return fold64(xxhash.Sum64(k))
	}
	return reflectHash(reflect.ValueOf(any(key)))
}

// hashFloat hashes 0 and -0 alike, since they are == to each other.
func hashFloat(f float64) uint32 {
	if f == 0 {
		f = 0
	}
	return fold64(math.Float64bits(f))
}

// mix folds h into an accumulated hash the way the boost hash_combine does.
func mix(acc, h uint32) uint32 {
	return acc ^ (h + 0x9e3779b9 + acc<<6 + acc>>2)
}

func reflectHash(v reflect.Value) uint32 {
	switch v.Kind() {
	case reflect.Invalid:
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fold64(uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fold64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return hashFloat(v.Float())
	case reflect.Complex64, reflect.Complex128:
		var c = v.Complex()
		return mix(hashFloat(real(c)), hashFloat(imag(c)))
	case reflect.Bool:
		if v.Bool() {
			return 1
		}
		return 0
	case reflect.String:
		return fold64(xxhash.Sum64String(v.String()))
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return fold64(uint64(v.Pointer()))
	case reflect.Interface:
		if v.IsNil() {
			return 0
		}
		return reflectHash(v.Elem())
	case reflect.Array:
		var h uint32
		for i := 0; i < v.Len(); i++ {
			h = mix(h, reflectHash(v.Index(i)))
		}
		return h
	case reflect.Struct:
		var h uint32
		for i := 0; i < v.NumField(); i++ {
			h = mix(h, reflectHash(v.Field(i)))
		}
		return h
	}
	// Slices, maps and funcs are never Equal, so any hash will do.
	if v.CanInterface() {
		return fold64(xxhash.Sum64String(fmt.Sprintf("%#v", v.Interface())))
	}
	return 0
}

func (defaultHasher[K]) Equal(a, b K) bool {
	switch x := any(a).(type) {
	case string:
		y, ok := any(b).(string)
		return ok && x == y
	case int:
		y, ok := any(b).(int)
		return ok && x == y
	case []byte:
		y, ok := any(b).([]byte)
		return ok && bytes.Equal(x, y)
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
