package check

type valueKind int

const (
	kindBool valueKind = iota
	kindString
)

// Value is the tagged result type used for expected and actual check values.
// It holds either a bool or a string; the string form carries sentinel
// states such as "Account not found" or "Unknown". Values of different
// kinds never compare equal, so a sentinel can never satisfy a boolean
// expectation.
type Value struct {
	kind valueKind
	b    bool
	s    string
}

// BoolValue wraps a boolean observation.
func BoolValue(b bool) Value {
	return Value{kind: kindBool, b: b}
}

// StringValue wraps a string observation or sentinel.
func StringValue(s string) Value {
	return Value{kind: kindString, s: s}
}

// Equal reports strict equality: same kind, same payload. No fuzzy or
// cross-kind matching.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.b == o.b && v.s == o.s
}

// String renders the value for the report: "True"/"False" for booleans,
// the payload itself for strings.
func (v Value) String() string {
	if v.kind == kindBool {
		if v.b {
			return "True"
		}
		return "False"
	}
	return v.s
}
