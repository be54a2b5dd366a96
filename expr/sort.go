package expr

import "strconv"

// Sort is the declared value domain of a term.
type Sort int

const (
	SortInvalid Sort = iota
	Bool
	Int
	Real
	String
)

var sortNames = [...]string{
	SortInvalid: "Invalid",
	Bool:        "Bool",
	Int:         "Int",
	Real:        "Real",
	String:      "String",
}

func (s Sort) String() string {
	if s >= 0 && int(s) < len(sortNames) {
		return sortNames[s]
	}
	return "Sort(" + strconv.Itoa(int(s)) + ")"
}

// Numeric reports whether s is Int or Real.
func (s Sort) Numeric() bool { return s == Int || s == Real }

// ParseSort maps an SMT-LIB sort name to a Sort.
func ParseSort(name string) (Sort, bool) {
	for i, n := range sortNames {
		if i != int(SortInvalid) && n == name {
			return Sort(i), true
		}
	}
	return SortInvalid, false
}

// Join returns the sort of an arithmetic term over operands of sort a and b:
// Int if both are Int, Real if both are numeric and one is Real, and
// SortInvalid otherwise.
func Join(a, b Sort) Sort {
	switch {
	case a == Int && b == Int:
		return Int
	case a.Numeric() && b.Numeric():
		return Real
	default:
		return SortInvalid
	}
}
