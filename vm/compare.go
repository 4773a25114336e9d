package vm

// CompareUnordered is compare's reserved sentinel for pairs with no
// defined order (§4.4, resolving the Open Question on typed receivers in
// §9): distinct from -1, 0 and 1 so callers can detect "undefined" rather
// than silently treating it as a false equality or an arbitrary order.
const CompareUnordered = -2

// compare implements §4.4's total order: numeric promotion between
// Integer and Float, lexicographic byte compare for String, identity by
// id for Symbol, structural (element-wise with length tiebreak) for
// Array, 0 for nil/nil, true/true and false/false, and CompareUnordered
// for everything else.
func compare(a, b Value) int {
	switch {
	case a.tag == Integer && b.tag == Integer:
		return cmpInt64(a.Integer_(), b.Integer_())
	case isNumeric(a) && isNumeric(b):
		return cmpFloat64(numericFloat(a), numericFloat(b))
	case a.tag == Symbol && b.tag == Symbol:
		return cmpUint32(a.SymbolID(), b.SymbolID())
	case a.tag == String && b.tag == String:
		return cmpBytes(a.Bytes(), b.Bytes())
	case a.tag == Array && b.tag == Array:
		return compareArrays(a.Elements(), b.Elements())
	case a.tag == Nil && b.tag == Nil:
		return 0
	case a.tag == True && b.tag == True, a.tag == False && b.tag == False:
		return 0
	default:
		return CompareUnordered
	}
}

func isNumeric(v Value) bool { return v.tag == Integer || v.tag == Float }

func numericFloat(v Value) float64 {
	if v.tag == Integer {
		return float64(v.Integer_())
	}
	return v.Float_()
}

func compareArrays(a, b []Value) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := compare(a[i], b[i]); c != 0 && c != CompareUnordered {
			return c
		} else if c == CompareUnordered {
			return CompareUnordered
		}
	}
	return cmpInt64(int64(len(a)), int64(len(b)))
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return cmpInt64(int64(len(a)), int64(len(b)))
}
