package node

import "strings"

// Equal compares two values for equality. Numbers compare by numeric value
// regardless of int/float representation.
func Equal(a, b Value) bool {
	if a.Kind == KindNull && b.Kind == KindNull {
		return true
	}
	if a.Kind == KindNull || b.Kind == KindNull {
		return false
	}

	if isNumber(a) && isNumber(b) {
		// Prefer exact int compare when possible.
		if a.Kind == KindInt && b.Kind == KindInt {
			return a.I64 == b.I64
		}
		return asFloat64(a) == asFloat64(b)
	}

	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindString:
		return a.S == b.S
	case KindBool:
		return a.B == b.B
	case KindArray:
		if len(a.A) != len(b.A) {
			return false
		}
		for i := range a.A {
			if !Equal(a.A[i], b.A[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.O) != len(b.O) {
			return false
		}
		for k, av := range a.O {
			bv, ok := b.O[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Less reports an ordered comparison: numeric for numbers, lexicographic
// for strings. Other kind combinations are unordered and return false.
func Less(a, b Value) bool {
	if isNumber(a) && isNumber(b) {
		return asFloat64(a) < asFloat64(b)
	}
	if a.Kind == KindString && b.Kind == KindString {
		return a.S < b.S
	}
	return false
}

// Greater is the ordered counterpart of Less.
func Greater(a, b Value) bool {
	if isNumber(a) && isNumber(b) {
		return asFloat64(a) > asFloat64(b)
	}
	if a.Kind == KindString && b.Kind == KindString {
		return a.S > b.S
	}
	return false
}

// Compare imposes a total order across kinds for sorting:
// null < bool < number < string < array < object, with false < true,
// numbers by numeric value and strings lexicographic. Arrays and objects
// order by their stable Key encoding.
func Compare(a, b Value) int {
	ra, rb := kindRank(a.Kind), kindRank(b.Kind)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch {
	case isNumber(a):
		fa, fb := asFloat64(a), asFloat64(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	case a.Kind == KindString:
		return strings.Compare(a.S, b.S)
	case a.Kind == KindBool:
		switch {
		case a.B == b.B:
			return 0
		case !a.B:
			return -1
		default:
			return 1
		}
	case a.Kind == KindArray || a.Kind == KindObject:
		return strings.Compare(a.Key(), b.Key())
	default:
		return 0
	}
}

func kindRank(k Kind) int {
	switch k {
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindInt, KindFloat:
		return 2
	case KindString:
		return 3
	case KindArray:
		return 4
	case KindObject:
		return 5
	default:
		return -1
	}
}

func isNumber(v Value) bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

func asFloat64(v Value) float64 {
	switch v.Kind {
	case KindInt:
		return float64(v.I64)
	case KindFloat:
		return v.F64
	default:
		return 0
	}
}
