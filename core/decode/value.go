package decode

import "fmt"

// ValueKind identifies which branch of the value sum a Value holds.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// String returns the JSON-vocabulary name of the kind, as shown to users in
// type-mismatch messages.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "array"
	case KindMapping:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is one node of the generic value tree. The field matching Kind is
// populated; the others hold their zero values. Numbers are kept as their
// raw literal text (Num) so integer/float distinctions survive until the
// validator decides what to do with them.
type Value struct {
	Kind ValueKind
	Bool bool
	Num  string
	Str  string
	Seq  []Value
	Map  []Member
}

// Member is one key/value entry of a mapping. Entries keep the order they
// appeared in the input; keys are unique.
type Member struct {
	Key   string
	Value Value
}

// Lookup returns the value stored under key in a mapping, reporting whether
// the key was present. Calling Lookup on a non-mapping always reports false.
func (v Value) Lookup(key string) (Value, bool) {
	if v.Kind != KindMapping {
		return Value{}, false
	}
	for _, m := range v.Map {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}
