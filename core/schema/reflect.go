package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// FromType derives a TypeSpec from the Go type T using reflection. It is
// the typed-struct analogue of writing the descriptor by hand: struct
// fields become object fields in declaration order, named by their `json`
// tag, with pointers mapping to [Optional] and slices to [Sequence].
//
// The `jsonschema` struct tag customises the derived field:
//
//   - "required" forces the field to be required
//   - "description=..." attaches a description (no commas)
//   - "enum=a,enum=b" turns a string field into an enum
//   - "minLength=n" / "maxLength=n" add length constraints
//   - "minimum=x" / "maximum=x" add value constraints
//   - "default=v" marks the field optional with the given default,
//     parsed according to the field's kind
//
// A field is required when it is neither a pointer nor tagged omitempty,
// or when explicitly tagged required. Maps, channels, funcs and recursive
// struct types are not expressible as descriptors and return an error.
//
// Example:
//
//	type Task struct {
//	    Title    string `json:"title" jsonschema:"minLength=1"`
//	    Priority string `json:"priority" jsonschema:"enum=low,enum=medium,enum=high,default=medium"`
//	    Done     bool   `json:"done" jsonschema:"default=false"`
//	}
//
//	spec, err := schema.FromType[Task]()
func FromType[T any]() (TypeSpec, error) {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	spec, err := typeSpecFor(t, make(map[reflect.Type]bool))
	if err != nil {
		return TypeSpec{}, err
	}
	if err := Check(spec); err != nil {
		return TypeSpec{}, err
	}
	return spec, nil
}

// MustFromType is like [FromType] but panics on error, for statically
// declared response types.
func MustFromType[T any]() TypeSpec {
	spec, err := FromType[T]()
	if err != nil {
		panic(err)
	}
	return spec
}

func typeSpecFor(t reflect.Type, visiting map[reflect.Type]bool) (TypeSpec, error) {
	switch t.Kind() {
	case reflect.String:
		return String(), nil
	case reflect.Bool:
		return Boolean(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer(), nil
	case reflect.Float32, reflect.Float64:
		return Float(), nil

	case reflect.Slice, reflect.Array:
		elem, err := typeSpecFor(t.Elem(), visiting)
		if err != nil {
			return TypeSpec{}, err
		}
		return Sequence(elem), nil

	case reflect.Ptr:
		inner, err := typeSpecFor(t.Elem(), visiting)
		if err != nil {
			return TypeSpec{}, err
		}
		if inner.Kind == KindOptional {
			return inner, nil
		}
		return Optional(inner), nil

	case reflect.Struct:
		if visiting[t] {
			return TypeSpec{}, fmt.Errorf("structo: recursive type %s cannot be expressed as a schema", t)
		}
		visiting[t] = true
		defer delete(visiting, t)
		return structSpecFor(t, visiting)

	default:
		return TypeSpec{}, fmt.Errorf("structo: unsupported type %s (kind %s)", t, t.Kind())
	}
}

func structSpecFor(t reflect.Type, visiting map[reflect.Type]bool) (TypeSpec, error) {
	var fields []FieldSpec
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		jsonTag := sf.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := sf.Name
		omitEmpty := false
		if jsonTag != "" {
			if commaIdx := strings.Index(jsonTag, ","); commaIdx != -1 {
				if jsonTag[:commaIdx] != "" {
					name = jsonTag[:commaIdx]
				}
				omitEmpty = strings.Contains(jsonTag[commaIdx:], "omitempty")
			} else {
				name = jsonTag
			}
		}

		fieldType, err := typeSpecFor(sf.Type, visiting)
		if err != nil {
			return TypeSpec{}, err
		}

		field := FieldSpec{
			Name:     name,
			Type:     fieldType,
			Required: sf.Type.Kind() != reflect.Ptr && !omitEmpty,
		}
		if fieldType.Kind == KindOptional {
			field.Required = false
		}

		if err := applySchemaTag(&field, sf); err != nil {
			return TypeSpec{}, err
		}
		fields = append(fields, field)
	}
	return TypeSpec{Kind: KindObject, Fields: fields}, nil
}

// applySchemaTag interprets the jsonschema struct tag for one field. The
// tag is a comma-separated list of key=value items, so descriptions cannot
// contain commas; enum items each repeat the enum= key.
func applySchemaTag(field *FieldSpec, sf reflect.StructField) error {
	tag := sf.Tag.Get("jsonschema")
	if tag == "" {
		return nil
	}

	var enum []string
	var defaultText *string

	for _, item := range strings.Split(tag, ",") {
		kv := strings.SplitN(item, "=", 2)
		if len(kv) == 1 {
			if kv[0] == "required" {
				field.Required = true
				field.Default = nil
			}
			continue
		}

		key, value := kv[0], kv[1]
		switch key {
		case "description":
			field.Description = value
		case "enum":
			enum = append(enum, value)
		case "default":
			v := value
			defaultText = &v
		case "minLength", "maxLength":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("structo: field %q: invalid %s=%q: %w", field.Name, key, value, err)
			}
			kind := MinLength
			if key == "maxLength" {
				kind = MaxLength
			}
			field.Constraints = append(field.Constraints, Constraint{Kind: kind, Length: n})
		case "minimum", "maximum":
			x, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("structo: field %q: invalid %s=%q: %w", field.Name, key, value, err)
			}
			kind := MinValue
			if key == "maximum" {
				kind = MaxValue
			}
			field.Constraints = append(field.Constraints, Constraint{Kind: kind, Bound: x})
		default:
			return fmt.Errorf("structo: field %q: unknown jsonschema tag key %q", field.Name, key)
		}
	}

	if len(enum) > 0 {
		effective := field.Type
		wrapped := effective.Kind == KindOptional
		if wrapped {
			effective = *effective.Inner
		}
		if effective.Kind != KindString {
			return fmt.Errorf("structo: field %q: enum tag on non-string field", field.Name)
		}
		enumSpec := Enum(enum...)
		if wrapped {
			field.Type = Optional(enumSpec)
		} else {
			field.Type = enumSpec
		}
	}

	if defaultText != nil {
		v, err := parseDefaultText(*defaultText, field.Type)
		if err != nil {
			return fmt.Errorf("structo: field %q: %w", field.Name, err)
		}
		field.Required = false
		field.Default = v
	}
	return nil
}

func parseDefaultText(text string, spec TypeSpec) (any, error) {
	if spec.Kind == KindOptional {
		return parseDefaultText(text, *spec.Inner)
	}
	switch spec.Kind {
	case KindString, KindEnum:
		return text, nil
	case KindInteger:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer default %q: %w", text, err)
		}
		return n, nil
	case KindFloat:
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number default %q: %w", text, err)
		}
		return x, nil
	case KindBoolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean default %q: %w", text, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("default tag unsupported for %s field", spec.Kind)
	}
}
