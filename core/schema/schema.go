package schema

import (
	"fmt"
	"strings"
)

// Kind identifies the shape a TypeSpec describes.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindEnum
	KindObject
	KindSequence
	KindOptional
)

// String returns the lowercase name of the kind as used in violation
// messages and schema definition documents.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindEnum:
		return "enum"
	case KindObject:
		return "object"
	case KindSequence:
		return "sequence"
	case KindOptional:
		return "optional"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TypeSpec describes the expected shape of a value. Exactly one of the
// auxiliary fields is populated, selected by Kind:
//
//   - KindEnum uses Allowed
//   - KindObject uses Fields
//   - KindSequence uses Element
//   - KindOptional uses Inner
//
// TypeSpecs are treated as immutable once returned by a constructor; they
// are shared by value and are safe for concurrent use.
type TypeSpec struct {
	Kind    Kind
	Allowed []string
	Fields  []FieldSpec
	Element *TypeSpec
	Inner   *TypeSpec
}

// FieldSpec describes one named field of an object: its type, whether it is
// required, the default substituted when an optional field is absent, and
// any constraints checked after type acceptance.
type FieldSpec struct {
	Name        string
	Type        TypeSpec
	Required    bool
	Default     any
	Description string
	Constraints []Constraint
}

// ConstraintKind identifies a field constraint.
type ConstraintKind int

const (
	// MinLength and MaxLength bound the character count of a string or the
	// element count of a sequence.
	MinLength ConstraintKind = iota
	MaxLength
	// MinValue and MaxValue are inclusive bounds on a numeric field.
	MinValue
	MaxValue
)

// Constraint is a single bound attached to a field. Length holds the bound
// for MinLength/MaxLength, Bound holds it for MinValue/MaxValue.
type Constraint struct {
	Kind   ConstraintKind
	Length int
	Bound  float64
}

// String renders the constraint in the compact key=value form used in
// violation messages, e.g. "minLength=1" or "maximum=100".
func (c Constraint) String() string {
	switch c.Kind {
	case MinLength:
		return fmt.Sprintf("minLength=%d", c.Length)
	case MaxLength:
		return fmt.Sprintf("maxLength=%d", c.Length)
	case MinValue:
		return fmt.Sprintf("minimum=%v", c.Bound)
	case MaxValue:
		return fmt.Sprintf("maximum=%v", c.Bound)
	default:
		return fmt.Sprintf("constraint(%d)", int(c.Kind))
	}
}

// String returns a string TypeSpec.
func String() TypeSpec { return TypeSpec{Kind: KindString} }

// Integer returns an integer TypeSpec.
func Integer() TypeSpec { return TypeSpec{Kind: KindInteger} }

// Float returns a floating-point TypeSpec.
func Float() TypeSpec { return TypeSpec{Kind: KindFloat} }

// Boolean returns a boolean TypeSpec.
func Boolean() TypeSpec { return TypeSpec{Kind: KindBoolean} }

// Enum returns a TypeSpec accepting exactly the given string values,
// matched case-sensitively.
func Enum(allowed ...string) TypeSpec {
	return TypeSpec{Kind: KindEnum, Allowed: allowed}
}

// Sequence returns a TypeSpec describing an ordered list whose elements all
// conform to element.
func Sequence(element TypeSpec) TypeSpec {
	return TypeSpec{Kind: KindSequence, Element: &element}
}

// Optional wraps inner so that an explicit null is accepted as a valid,
// absent value. Fields of optional type are never required.
func Optional(inner TypeSpec) TypeSpec {
	return TypeSpec{Kind: KindOptional, Inner: &inner}
}

// Object builds an object TypeSpec from the given fields, in order, and
// verifies the whole descriptor: field names must be unique and non-empty,
// constraints must be compatible with their field's kind, defaults must
// conform to their field's type, and enums must have a non-empty, duplicate
// free allowed set. Any of these being wrong is a configuration error
// returned here, never surfaced at validation time.
func Object(fields ...FieldSpec) (TypeSpec, error) {
	spec := TypeSpec{Kind: KindObject, Fields: fields}
	if err := Check(spec); err != nil {
		return TypeSpec{}, err
	}
	return spec, nil
}

// MustObject is like [Object] but panics on a configuration error. It is
// intended for static schema definitions whose correctness is covered by
// tests.
func MustObject(fields ...FieldSpec) TypeSpec {
	spec, err := Object(fields...)
	if err != nil {
		panic(err)
	}
	return spec
}

// FieldOption customises a FieldSpec built by [Field].
type FieldOption func(*FieldSpec)

// WithDefault marks the field optional and records the value substituted
// when the field is absent from input. The default must conform to the
// field's type; this is verified when the enclosing object is built.
func WithDefault(v any) FieldOption {
	return func(f *FieldSpec) {
		f.Required = false
		f.Default = v
	}
}

// WithDescription attaches a human-readable description to the field. It is
// informational only and never affects validation.
func WithDescription(desc string) FieldOption {
	return func(f *FieldSpec) { f.Description = desc }
}

// WithMinLength constrains the character count of a string field or the
// element count of a sequence field.
func WithMinLength(n int) FieldOption {
	return func(f *FieldSpec) {
		f.Constraints = append(f.Constraints, Constraint{Kind: MinLength, Length: n})
	}
}

// WithMaxLength constrains the character count of a string field or the
// element count of a sequence field.
func WithMaxLength(n int) FieldOption {
	return func(f *FieldSpec) {
		f.Constraints = append(f.Constraints, Constraint{Kind: MaxLength, Length: n})
	}
}

// WithMinValue sets an inclusive lower bound on a numeric field.
func WithMinValue(x float64) FieldOption {
	return func(f *FieldSpec) {
		f.Constraints = append(f.Constraints, Constraint{Kind: MinValue, Bound: x})
	}
}

// WithMaxValue sets an inclusive upper bound on a numeric field.
func WithMaxValue(x float64) FieldOption {
	return func(f *FieldSpec) {
		f.Constraints = append(f.Constraints, Constraint{Kind: MaxValue, Bound: x})
	}
}

// Field builds a FieldSpec. Fields are required by default; [WithDefault]
// makes a field optional, and fields of [Optional] type are optional even
// without a default.
func Field(name string, t TypeSpec, opts ...FieldOption) FieldSpec {
	f := FieldSpec{Name: name, Type: t, Required: true}
	for _, opt := range opts {
		opt(&f)
	}
	if f.Type.Kind == KindOptional {
		f.Required = false
	}
	return f
}

// Check verifies that spec is a well-formed descriptor, recursing through
// nested objects, sequences and optionals. Constructors call it implicitly;
// it is exported for descriptors assembled by hand or by a loader.
func Check(spec TypeSpec) error {
	return checkType(spec, "")
}

func checkType(spec TypeSpec, path string) error {
	at := func() string {
		if path == "" {
			return "schema root"
		}
		return fmt.Sprintf("field %q", path)
	}

	switch spec.Kind {
	case KindString, KindInteger, KindFloat, KindBoolean:
		return nil

	case KindEnum:
		if len(spec.Allowed) == 0 {
			return fmt.Errorf("structo: %s: enum has no allowed values", at())
		}
		seen := make(map[string]bool, len(spec.Allowed))
		for _, v := range spec.Allowed {
			if seen[v] {
				return fmt.Errorf("structo: %s: duplicate enum value %q", at(), v)
			}
			seen[v] = true
		}
		return nil

	case KindObject:
		names := make(map[string]bool, len(spec.Fields))
		for _, f := range spec.Fields {
			if f.Name == "" {
				return fmt.Errorf("structo: %s: field with empty name", at())
			}
			if names[f.Name] {
				return fmt.Errorf("structo: %s: duplicate field %q", at(), f.Name)
			}
			names[f.Name] = true

			fieldPath := f.Name
			if path != "" {
				fieldPath = path + "." + f.Name
			}
			if err := checkField(f, fieldPath); err != nil {
				return err
			}
		}
		return nil

	case KindSequence:
		if spec.Element == nil {
			return fmt.Errorf("structo: %s: sequence has no element type", at())
		}
		return checkType(*spec.Element, path+"[]")

	case KindOptional:
		if spec.Inner == nil {
			return fmt.Errorf("structo: %s: optional has no inner type", at())
		}
		if spec.Inner.Kind == KindOptional {
			return fmt.Errorf("structo: %s: optional of optional", at())
		}
		return checkType(*spec.Inner, path)

	default:
		return fmt.Errorf("structo: %s: unknown kind %v", at(), spec.Kind)
	}
}

func checkField(f FieldSpec, path string) error {
	if err := checkType(f.Type, path); err != nil {
		return err
	}
	if f.Required && f.Default != nil {
		return fmt.Errorf("structo: field %q: required field has a default", path)
	}

	effective := f.Type
	if effective.Kind == KindOptional {
		effective = *effective.Inner
	}

	for _, c := range f.Constraints {
		switch c.Kind {
		case MinLength, MaxLength:
			switch effective.Kind {
			case KindString, KindEnum, KindSequence:
			default:
				return fmt.Errorf("structo: field %q: %s incompatible with %s field", path, c, effective.Kind)
			}
			if c.Length < 0 {
				return fmt.Errorf("structo: field %q: %s is negative", path, c)
			}
		case MinValue, MaxValue:
			switch effective.Kind {
			case KindInteger, KindFloat:
			default:
				return fmt.Errorf("structo: field %q: %s incompatible with %s field", path, c, effective.Kind)
			}
		}
	}

	if f.Default != nil {
		if err := checkDefault(f.Default, effective, path); err != nil {
			return err
		}
	}
	return nil
}

// checkDefault verifies a default value conforms to the field's type. The
// accepted Go representations are deliberately narrow: the default comes
// from code or a definition document, not from untrusted input, so there is
// no coercion here.
func checkDefault(v any, spec TypeSpec, path string) error {
	switch spec.Kind {
	case KindString:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("structo: field %q: default %v (%T) is not a string", path, v, v)
		}
	case KindInteger:
		switch n := v.(type) {
		case int, int64:
		case float64:
			if n != float64(int64(n)) {
				return fmt.Errorf("structo: field %q: default %v is not an integer", path, n)
			}
		default:
			return fmt.Errorf("structo: field %q: default %v (%T) is not an integer", path, v, v)
		}
	case KindFloat:
		switch v.(type) {
		case float64, int, int64:
		default:
			return fmt.Errorf("structo: field %q: default %v (%T) is not a number", path, v, v)
		}
	case KindBoolean:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("structo: field %q: default %v (%T) is not a boolean", path, v, v)
		}
	case KindEnum:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("structo: field %q: default %v (%T) is not a string", path, v, v)
		}
		for _, allowed := range spec.Allowed {
			if s == allowed {
				return nil
			}
		}
		return fmt.Errorf("structo: field %q: default %q not in allowed set %s", path, s, strings.Join(spec.Allowed, ", "))
	case KindSequence:
		elems, ok := v.([]any)
		if !ok {
			return fmt.Errorf("structo: field %q: default %v (%T) is not a sequence", path, v, v)
		}
		for i, e := range elems {
			if err := checkDefault(e, *spec.Element, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case KindObject:
		m, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("structo: field %q: default %v (%T) is not an object", path, v, v)
		}
		for _, f := range spec.Fields {
			fv, present := m[f.Name]
			fieldPath := path + "." + f.Name
			if !present {
				if f.Required {
					return fmt.Errorf("structo: field %q: default omits required field", fieldPath)
				}
				continue
			}
			effective := f.Type
			if effective.Kind == KindOptional {
				effective = *effective.Inner
			}
			if err := checkDefault(fv, effective, fieldPath); err != nil {
				return err
			}
		}
	case KindOptional:
		return checkDefault(v, *spec.Inner, path)
	}
	return nil
}
