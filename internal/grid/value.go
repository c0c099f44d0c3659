package grid

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the type carried by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is a tagged parameter value. The zero Value is invalid.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// Int returns an integer value.
func Int(v int) Value { return Value{kind: KindInt, i: int64(v)} }

// Float returns a floating point value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// String returns a categorical value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Bool returns a boolean value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Kind returns the type tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether the value was built by one of the constructors.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// AsInt returns the integer payload. Only KindInt values convert.
func (v Value) AsInt() (int, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return int(v.i), true
}

// AsFloat returns the numeric payload; integers widen to float64.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsString returns the categorical payload.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Compatible reports whether v may stand in for a parameter whose default is
// def. Kinds must match, except that an int may be given for a float.
func (v Value) Compatible(def Value) bool {
	if v.kind == def.kind {
		return v.kind != KindInvalid
	}
	return v.kind == KindInt && def.kind == KindFloat
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case KindString:
		return v.s == o.s
	case KindBool:
		return v.b == o.b
	default:
		return true
	}
}

// Interface returns the payload as a plain Go value, or nil for an invalid value.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return int(v.i)
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// String renders the value the way it appears in trial logs.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return FormatFloat(v.f)
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "<invalid>"
	}
}

// FormatFloat renders f in its shortest round-trip form. Magnitudes in
// [1e-4, 1e16) and zero use positional notation, everything else uses an
// exponent. Integral values keep a trailing ".0" so they stay distinguishable
// from ints, and non-finite values render as inf, -inf and nan.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
