package derive

import (
	"reflect"
)

// Same is the default input comparison. Reference kinds (pointers, maps, channels) are the
// same when they point at the same thing; slices additionally need the same length.
// Comparable values use ==. Functions and non-comparable values are never the same, which
// errs on the side of recomputing.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Func:
		return false
	}

	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}
