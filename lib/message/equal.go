// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"bytes"
	"math"
)

// Equal reports whether two records have the same type and the same
// value in every field of that type. Floating-point fields compare by
// value, except that NaN equals NaN. Keys outside the type's field
// list are not compared.
func Equal(a, b *Record) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type == nil || b.Type == nil {
		return a.Type == b.Type
	}
	if a.Type.FullName() != b.Type.FullName() {
		return false
	}
	for _, field := range a.Type.Fields {
		left, leftOK := a.Fields[field.Name]
		right, rightOK := b.Fields[field.Name]
		if leftOK != rightOK || !valueEqual(left, right) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch left := a.(type) {
	case float32:
		right, ok := b.(float32)
		return ok && (left == right || (isNaN32(left) && isNaN32(right)))
	case float64:
		right, ok := b.(float64)
		return ok && (left == right || (math.IsNaN(left) && math.IsNaN(right)))
	case []byte:
		right, ok := b.([]byte)
		return ok && bytes.Equal(left, right)
	case *Record:
		right, ok := b.(*Record)
		return ok && Equal(left, right)
	case []any:
		right, ok := b.([]any)
		if !ok || len(left) != len(right) {
			return false
		}
		for index := range left {
			if !valueEqual(left[index], right[index]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func isNaN32(value float32) bool {
	return value != value
}
