package validate

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/structohq/structo/core/decode"
	"github.com/structohq/structo/core/schema"
)

// Validate walks value against spec and returns either a fully valid
// TypedValue or the ordered list of everything wrong with the input,
// never both. All fields are checked in a single pass; a violation in one
// field does not stop siblings from being checked.
func Validate(value decode.Value, spec schema.TypeSpec) (TypedValue, Violations) {
	w := &walker{}
	typed, _ := w.walk("", value, spec)
	if len(w.violations) > 0 {
		return TypedValue{}, w.violations
	}
	return typed, nil
}

type walker struct {
	violations Violations
}

func (w *walker) fail(v Violation) (TypedValue, bool) {
	w.violations = append(w.violations, v)
	return TypedValue{}, false
}

func (w *walker) walk(path string, v decode.Value, spec schema.TypeSpec) (TypedValue, bool) {
	switch spec.Kind {
	case schema.KindString:
		return w.walkString(path, v)
	case schema.KindInteger:
		return w.walkInteger(path, v)
	case schema.KindFloat:
		return w.walkFloat(path, v)
	case schema.KindBoolean:
		return w.walkBoolean(path, v)
	case schema.KindEnum:
		return w.walkEnum(path, v, spec.Allowed)
	case schema.KindObject:
		return w.walkObject(path, v, spec.Fields)
	case schema.KindSequence:
		return w.walkSequence(path, v, *spec.Element)
	case schema.KindOptional:
		if v.Kind == decode.KindNull {
			return TypedValue{kind: effectiveKind(*spec.Inner)}, true
		}
		return w.walk(path, v, *spec.Inner)
	default:
		return w.fail(typeMismatch(path, spec.Kind.String(), v.Kind.String()))
	}
}

// walkString accepts strings as-is and coerces numbers and booleans to
// their canonical text form. Nulls, arrays and objects never become
// strings.
func (w *walker) walkString(path string, v decode.Value) (TypedValue, bool) {
	switch v.Kind {
	case decode.KindString:
		return TypedValue{kind: schema.KindString, present: true, str: v.Str}, true
	case decode.KindNumber:
		return TypedValue{kind: schema.KindString, present: true, str: canonicalNumber(v.Num)}, true
	case decode.KindBool:
		return TypedValue{kind: schema.KindString, present: true, str: strconv.FormatBool(v.Bool)}, true
	default:
		return w.fail(typeMismatch(path, "string", v.Kind.String()))
	}
}

func (w *walker) walkInteger(path string, v decode.Value) (TypedValue, bool) {
	switch v.Kind {
	case decode.KindNumber:
		if n, err := strconv.ParseInt(v.Num, 10, 64); err == nil {
			return TypedValue{kind: schema.KindInteger, present: true, i: n}, true
		}
		// Exponent or decimal-point forms still count when integral,
		// e.g. 42.0 or 1e3. The value must also fit in int64: converting
		// an out-of-range float64 would fabricate a garbage integer.
		if f, err := strconv.ParseFloat(v.Num, 64); err == nil && f == math.Trunc(f) &&
			f >= math.MinInt64 && f < math.MaxInt64 {
			return TypedValue{kind: schema.KindInteger, present: true, i: int64(f)}, true
		}
		return w.fail(typeMismatch(path, "integer", "number"))
	case decode.KindString:
		if n, err := strconv.ParseInt(v.Str, 10, 64); err == nil {
			return TypedValue{kind: schema.KindInteger, present: true, i: n}, true
		}
		return w.fail(typeMismatch(path, "integer", "string"))
	default:
		return w.fail(typeMismatch(path, "integer", v.Kind.String()))
	}
}

func (w *walker) walkFloat(path string, v decode.Value) (TypedValue, bool) {
	switch v.Kind {
	case decode.KindNumber:
		f, err := strconv.ParseFloat(v.Num, 64)
		if err != nil {
			return w.fail(typeMismatch(path, "float", "number"))
		}
		return TypedValue{kind: schema.KindFloat, present: true, f: f}, true
	case decode.KindString:
		// ParseFloat accepts "NaN" and "Inf" spellings; neither is a JSON
		// number, neither survives constraint checks, and neither can be
		// re-encoded, so only finite results coerce.
		if f, err := strconv.ParseFloat(v.Str, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return TypedValue{kind: schema.KindFloat, present: true, f: f}, true
		}
		return w.fail(typeMismatch(path, "float", "string"))
	default:
		return w.fail(typeMismatch(path, "float", v.Kind.String()))
	}
}

// walkBoolean is intentionally stricter than the other scalars: only a
// real boolean is accepted. "true", "yes" and 1 all stay TypeMismatch so
// ambiguous truthy tokens never silently become booleans.
func (w *walker) walkBoolean(path string, v decode.Value) (TypedValue, bool) {
	if v.Kind != decode.KindBool {
		return w.fail(typeMismatch(path, "boolean", v.Kind.String()))
	}
	return TypedValue{kind: schema.KindBoolean, present: true, b: v.Bool}, true
}

func (w *walker) walkEnum(path string, v decode.Value, allowed []string) (TypedValue, bool) {
	if v.Kind == decode.KindString {
		for _, a := range allowed {
			if v.Str == a {
				return TypedValue{kind: schema.KindEnum, present: true, str: v.Str}, true
			}
		}
		return w.fail(unknownEnum(path, v.Str, allowed))
	}
	return w.fail(unknownEnum(path, renderValue(v), allowed))
}

func (w *walker) walkObject(path string, v decode.Value, fields []schema.FieldSpec) (TypedValue, bool) {
	if v.Kind != decode.KindMapping {
		return w.fail(typeMismatch(path, "object", v.Kind.String()))
	}

	typed := TypedValue{kind: schema.KindObject, present: true, fields: make([]TypedField, 0, len(fields))}
	clean := true

	// Unknown keys in the mapping are ignored: tolerating extra fields is
	// what lets the schema evolve independently of prompt wording.
	for _, f := range fields {
		fieldPath := f.Name
		if path != "" {
			fieldPath = path + "." + f.Name
		}

		raw, present := v.Lookup(f.Name)
		if !present {
			if f.Required {
				w.violations = append(w.violations, missingField(fieldPath))
				clean = false
				continue
			}
			typed.fields = append(typed.fields, TypedField{Name: f.Name, Value: defaultTyped(f)})
			continue
		}

		fv, ok := w.walk(fieldPath, raw, f.Type)
		if !ok {
			clean = false
			continue
		}
		if !w.checkConstraints(fieldPath, fv, f.Constraints) {
			clean = false
			continue
		}
		typed.fields = append(typed.fields, TypedField{Name: f.Name, Value: fv})
	}

	if !clean {
		return TypedValue{}, false
	}
	return typed, true
}

func (w *walker) walkSequence(path string, v decode.Value, element schema.TypeSpec) (TypedValue, bool) {
	if v.Kind != decode.KindSequence {
		return w.fail(typeMismatch(path, "sequence", v.Kind.String()))
	}
	typed := TypedValue{kind: schema.KindSequence, present: true, elems: make([]TypedValue, 0, len(v.Seq))}
	clean := true
	for i, elem := range v.Seq {
		ev, ok := w.walk(fmt.Sprintf("%s[%d]", path, i), elem, element)
		if !ok {
			clean = false
			continue
		}
		typed.elems = append(typed.elems, ev)
	}
	if !clean {
		return TypedValue{}, false
	}
	return typed, true
}

// checkConstraints runs after type acceptance, against the coerced value.
// A failed constraint is collected like any other violation so sibling
// fields still get checked. Absent optionals are exempt.
func (w *walker) checkConstraints(path string, v TypedValue, constraints []schema.Constraint) bool {
	if !v.present {
		return true
	}
	ok := true
	for _, c := range constraints {
		switch c.Kind {
		case schema.MinLength:
			if n := lengthOf(v); n < c.Length {
				w.violations = append(w.violations, constraintViolated(path, c.String(), fmt.Sprintf("length %d", n)))
				ok = false
			}
		case schema.MaxLength:
			if n := lengthOf(v); n > c.Length {
				w.violations = append(w.violations, constraintViolated(path, c.String(), fmt.Sprintf("length %d", n)))
				ok = false
			}
		case schema.MinValue:
			if x := v.FloatVal(); x < c.Bound {
				w.violations = append(w.violations, constraintViolated(path, c.String(), fmt.Sprintf("value %v", numText(v))))
				ok = false
			}
		case schema.MaxValue:
			if x := v.FloatVal(); x > c.Bound {
				w.violations = append(w.violations, constraintViolated(path, c.String(), fmt.Sprintf("value %v", numText(v))))
				ok = false
			}
		}
	}
	return ok
}

func lengthOf(v TypedValue) int {
	switch v.kind {
	case schema.KindString, schema.KindEnum:
		return utf8.RuneCountInString(v.str)
	case schema.KindSequence:
		return len(v.elems)
	default:
		return 0
	}
}

func numText(v TypedValue) string {
	if v.kind == schema.KindInteger {
		return strconv.FormatInt(v.i, 10)
	}
	return strconv.FormatFloat(v.f, 'f', -1, 64)
}

// effectiveKind resolves the kind an optional's absent value reports.
func effectiveKind(spec schema.TypeSpec) schema.Kind {
	if spec.Kind == schema.KindOptional {
		return effectiveKind(*spec.Inner)
	}
	return spec.Kind
}

// defaultTyped builds the TypedValue substituted for an absent optional
// field. Defaults were checked against the field type when the schema was
// built, so unexpected shapes degrade to an absent value rather than a
// runtime failure.
func defaultTyped(f schema.FieldSpec) TypedValue {
	spec := f.Type
	if spec.Kind == schema.KindOptional {
		spec = *spec.Inner
	}
	return typedFromGo(f.Default, spec)
}

func typedFromGo(v any, spec schema.TypeSpec) TypedValue {
	if v == nil {
		return TypedValue{kind: effectiveKind(spec)}
	}
	if spec.Kind == schema.KindOptional {
		return typedFromGo(v, *spec.Inner)
	}

	switch spec.Kind {
	case schema.KindString, schema.KindEnum:
		if s, ok := v.(string); ok {
			return TypedValue{kind: spec.Kind, present: true, str: s}
		}
	case schema.KindInteger:
		switch n := v.(type) {
		case int:
			return TypedValue{kind: spec.Kind, present: true, i: int64(n)}
		case int64:
			return TypedValue{kind: spec.Kind, present: true, i: n}
		case float64:
			return TypedValue{kind: spec.Kind, present: true, i: int64(n)}
		}
	case schema.KindFloat:
		switch n := v.(type) {
		case float64:
			return TypedValue{kind: spec.Kind, present: true, f: n}
		case int:
			return TypedValue{kind: spec.Kind, present: true, f: float64(n)}
		case int64:
			return TypedValue{kind: spec.Kind, present: true, f: float64(n)}
		}
	case schema.KindBoolean:
		if b, ok := v.(bool); ok {
			return TypedValue{kind: spec.Kind, present: true, b: b}
		}
	case schema.KindSequence:
		if elems, ok := v.([]any); ok {
			typed := TypedValue{kind: spec.Kind, present: true, elems: make([]TypedValue, 0, len(elems))}
			for _, e := range elems {
				typed.elems = append(typed.elems, typedFromGo(e, *spec.Element))
			}
			return typed
		}
	case schema.KindObject:
		if m, ok := v.(map[string]any); ok {
			typed := TypedValue{kind: spec.Kind, present: true, fields: make([]TypedField, 0, len(spec.Fields))}
			for _, f := range spec.Fields {
				if fv, present := m[f.Name]; present {
					typed.fields = append(typed.fields, TypedField{Name: f.Name, Value: typedFromGo(fv, f.Type)})
				} else {
					typed.fields = append(typed.fields, TypedField{Name: f.Name, Value: defaultTyped(f)})
				}
			}
			return typed
		}
	}
	return TypedValue{kind: effectiveKind(spec)}
}

// canonicalNumber renders a JSON number literal in its canonical decimal
// text form: integral values without a fraction, everything else via the
// shortest float64 round trip.
func canonicalNumber(literal string) string {
	if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return literal
	}
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func renderValue(v decode.Value) string {
	switch v.Kind {
	case decode.KindString:
		return v.Str
	case decode.KindNumber:
		return v.Num
	case decode.KindBool:
		return strconv.FormatBool(v.Bool)
	case decode.KindNull:
		return "null"
	default:
		return v.Kind.String()
	}
}
