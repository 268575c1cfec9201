package validate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/structohq/structo/core/schema"
)

// TypedValue is a validated value mirroring its schema exactly. A
// TypedValue only ever exists in a fully valid state: the validator builds
// one solely when the violation list is empty, and there is no way to
// construct or mutate one from outside this package.
//
// Scalar accessors return the zero value when called on a different kind
// or on an absent optional; callers navigating by the schema they supplied
// never hit that case.
type TypedValue struct {
	kind    schema.Kind
	present bool

	str    string
	i      int64
	f      float64
	b      bool
	fields []TypedField
	elems  []TypedValue
}

// TypedField is one named field of a validated object, in schema order.
type TypedField struct {
	Name  string
	Value TypedValue
}

// Kind returns the schema kind this value conforms to. For values from an
// [schema.Optional] field the inner kind is reported.
func (v TypedValue) Kind() schema.Kind { return v.kind }

// Present reports whether the value is actually there. It is false only
// for optional values that were null or absent without a default.
func (v TypedValue) Present() bool { return v.present }

// StringVal returns the value of a string or enum.
func (v TypedValue) StringVal() string { return v.str }

// IntVal returns the value of an integer.
func (v TypedValue) IntVal() int64 { return v.i }

// FloatVal returns the value of a float, or the value of an integer
// widened to float64.
func (v TypedValue) FloatVal() float64 {
	if v.kind == schema.KindInteger {
		return float64(v.i)
	}
	return v.f
}

// BoolVal returns the value of a boolean.
func (v TypedValue) BoolVal() bool { return v.b }

// Field returns the named field of an object, reporting whether the schema
// declares it.
func (v TypedValue) Field(name string) (TypedValue, bool) {
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return TypedValue{}, false
}

// Fields returns an object's fields in schema order. The returned slice is
// shared and must not be modified.
func (v TypedValue) Fields() []TypedField { return v.fields }

// Len returns the element count of a sequence.
func (v TypedValue) Len() int { return len(v.elems) }

// Index returns the i-th element of a sequence.
func (v TypedValue) Index(i int) TypedValue { return v.elems[i] }

// Interface converts the value into plain Go data: string, int64, float64,
// bool, []any, map[string]any, or nil for an absent optional. Object key
// order is lost; use [TypedValue.MarshalJSON] where order matters.
func (v TypedValue) Interface() any {
	if !v.present {
		return nil
	}
	switch v.kind {
	case schema.KindString, schema.KindEnum:
		return v.str
	case schema.KindInteger:
		return v.i
	case schema.KindFloat:
		return v.f
	case schema.KindBoolean:
		return v.b
	case schema.KindSequence:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.Interface()
		}
		return out
	case schema.KindObject:
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			out[f.Name] = f.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes the value with object fields in schema order and
// defaults included, so a validated value re-encodes to JSON that passes
// the same schema again.
func (v TypedValue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v TypedValue) encode(buf *bytes.Buffer) error {
	if !v.present {
		buf.WriteString("null")
		return nil
	}
	switch v.kind {
	case schema.KindString, schema.KindEnum:
		raw, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(raw)
	case schema.KindInteger:
		fmt.Fprintf(buf, "%d", v.i)
	case schema.KindFloat:
		raw, err := json.Marshal(v.f)
		if err != nil {
			return err
		}
		buf.Write(raw)
	case schema.KindBoolean:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case schema.KindSequence:
		buf.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case schema.KindObject:
		buf.WriteByte('{')
		first := true
		for _, f := range v.fields {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			key, err := json.Marshal(f.Name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("structo: cannot encode kind %s", v.kind)
	}
	return nil
}
