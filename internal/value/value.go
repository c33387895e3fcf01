// Package value implements the intermediate tree that sits between the attribute
// collector and the format renderers.
//
// A tree is made of scalars (string, integer, float, bool and nil), sequences ([Sequence])
// and ordered mappings ([Mapping]). Mapping order is significant and is preserved by every
// renderer, so the tree never goes through a Go map.
package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrUnsupported is returned when a tree contains a value that is not a scalar,
// a [Sequence] or a [Mapping].
var ErrUnsupported = errors.New("unsupported value kind")

// Kind is the kind of a value in the tree.
type Kind int

const (
	KindNull     Kind = iota // nil
	KindBool                 // bool
	KindInt                  // Any Go integer type, normalised to int64
	KindFloat                // float32 or float64, normalised to float64
	KindString               // string
	KindSequence             // Sequence or []any
	KindMapping              // *Mapping
)

// String implements [fmt.Stringer] for [Kind].
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsContainer reports whether k is a sequence or a mapping.
func (k Kind) IsContainer() bool {
	return k == KindSequence || k == KindMapping
}

// Sequence is an ordered list of values.
type Sequence []any

// KindOf returns the [Kind] of v, or an error wrapping [ErrUnsupported].
func KindOf(v any) (Kind, error) {
	_, kind, err := Normalize(v)
	return kind, err
}

// Normalize classifies v and returns it in its canonical Go representation: int64 for
// integers (uint64 for unsigned values beyond the int64 range), float64 for floats,
// [Sequence] for []any. Strings, bools, nil and *Mapping
// are returned unchanged.
//
// A nil *Mapping is treated as null.
func Normalize(v any) (any, Kind, error) {
	switch v := v.(type) {
	case nil:
		return nil, KindNull, nil
	case bool:
		return v, KindBool, nil
	case string:
		return v, KindString, nil
	case int:
		return int64(v), KindInt, nil
	case int8:
		return int64(v), KindInt, nil
	case int16:
		return int64(v), KindInt, nil
	case int32:
		return int64(v), KindInt, nil
	case int64:
		return v, KindInt, nil
	case uint8:
		return int64(v), KindInt, nil
	case uint16:
		return int64(v), KindInt, nil
	case uint32:
		return int64(v), KindInt, nil
	case uint:
		return unsigned(uint64(v)), KindInt, nil
	case uint64:
		return unsigned(v), KindInt, nil
	case uintptr:
		return unsigned(uint64(v)), KindInt, nil
	case float32:
		return float64(v), KindFloat, nil
	case float64:
		return v, KindFloat, nil
	case Sequence:
		return v, KindSequence, nil
	case []any:
		return Sequence(v), KindSequence, nil
	case *Mapping:
		if v == nil {
			return nil, KindNull, nil
		}

		return v, KindMapping, nil
	default:
		return nil, 0, fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
}

// unsigned returns u as an int64 if it fits, otherwise unchanged.
func unsigned(u uint64) any {
	if u > math.MaxInt64 {
		return u
	}

	return int64(u)
}

// FormatInt returns the decimal text of a normalised integer, an int64 or uint64.
func FormatInt(v any) string {
	if u, ok := v.(uint64); ok {
		return strconv.FormatUint(u, 10)
	}

	return strconv.FormatInt(v.(int64), 10)
}

// Len returns the number of children of a normalised container value, or 0
// for anything else.
func Len(v any) int {
	switch v := v.(type) {
	case Sequence:
		return len(v)
	case *Mapping:
		return v.Len()
	default:
		return 0
	}
}
