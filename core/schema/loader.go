package schema

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// typeNode is the on-disk shape of a type in a schema definition document.
type typeNode struct {
	Type    string      `yaml:"type"`
	Allowed []string    `yaml:"allowed"`
	Fields  []fieldNode `yaml:"fields"`
	Element *typeNode   `yaml:"element"`
}

// fieldNode is the on-disk shape of one object field. A field is required
// unless it declares a default, sets optional: true, or sets required: false.
type fieldNode struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Required    *bool    `yaml:"required"`
	Optional    bool     `yaml:"optional"`
	Default     any      `yaml:"default"`
	MinLength   *int     `yaml:"minLength"`
	MaxLength   *int     `yaml:"maxLength"`
	Minimum     *float64 `yaml:"minimum"`
	Maximum     *float64 `yaml:"maximum"`

	typeNode `yaml:",inline"`
}

// Parse builds a TypeSpec from a schema definition document. Documents are
// YAML; since YAML is a superset of JSON, JSON documents work unchanged.
//
// Example definition:
//
//	type: object
//	fields:
//	  - name: title
//	    type: string
//	    minLength: 1
//	  - name: priority
//	    type: enum
//	    allowed: [low, medium, high]
//	    default: medium
//	  - name: steps
//	    type: sequence
//	    element:
//	      type: object
//	      fields:
//	        - name: number
//	          type: integer
//	        - name: title
//	          type: string
//
// The resulting descriptor passes [Check]; malformed documents and
// incompatible constraint/default combinations are reported as errors.
func Parse(doc []byte) (TypeSpec, error) {
	var root typeNode
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return TypeSpec{}, fmt.Errorf("structo: invalid schema definition: %w", err)
	}
	spec, err := root.spec()
	if err != nil {
		return TypeSpec{}, err
	}
	if err := Check(spec); err != nil {
		return TypeSpec{}, err
	}
	return spec, nil
}

// Load reads a schema definition document from r and builds a TypeSpec.
func Load(r io.Reader) (TypeSpec, error) {
	doc, err := io.ReadAll(r)
	if err != nil {
		return TypeSpec{}, fmt.Errorf("structo: reading schema definition: %w", err)
	}
	return Parse(doc)
}

func (n *typeNode) spec() (TypeSpec, error) {
	switch n.Type {
	case "string":
		return String(), nil
	case "integer", "int":
		return Integer(), nil
	case "float", "number":
		return Float(), nil
	case "boolean", "bool":
		return Boolean(), nil

	case "enum":
		return Enum(n.Allowed...), nil

	case "object":
		fields := make([]FieldSpec, 0, len(n.Fields))
		for _, fn := range n.Fields {
			f, err := fn.field()
			if err != nil {
				return TypeSpec{}, err
			}
			fields = append(fields, f)
		}
		return TypeSpec{Kind: KindObject, Fields: fields}, nil

	case "sequence", "array":
		if n.Element == nil {
			return TypeSpec{}, fmt.Errorf("structo: sequence type missing element")
		}
		elem, err := n.Element.spec()
		if err != nil {
			return TypeSpec{}, err
		}
		return Sequence(elem), nil

	case "":
		return TypeSpec{}, fmt.Errorf("structo: schema definition node missing type")
	default:
		return TypeSpec{}, fmt.Errorf("structo: unknown schema type %q", n.Type)
	}
}

func (fn *fieldNode) field() (FieldSpec, error) {
	if fn.Name == "" {
		return FieldSpec{}, fmt.Errorf("structo: schema definition field missing name")
	}

	t, err := fn.typeNode.spec()
	if err != nil {
		return FieldSpec{}, fmt.Errorf("%w (field %q)", err, fn.Name)
	}
	if fn.Optional {
		t = Optional(t)
	}

	f := FieldSpec{
		Name:        fn.Name,
		Type:        t,
		Description: fn.Description,
		Required:    true,
	}
	if fn.Default != nil {
		f.Required = false
		f.Default = normalizeDefault(fn.Default)
	}
	if fn.Optional {
		f.Required = false
	}
	if fn.Required != nil {
		f.Required = *fn.Required
	}

	// A non-required field with no default has nothing to substitute when
	// absent, so its type must tolerate absence itself. Wrapping here keeps
	// a validated value re-validatable against the same document.
	if !f.Required && f.Default == nil && f.Type.Kind != KindOptional {
		f.Type = Optional(f.Type)
	}

	if fn.MinLength != nil {
		f.Constraints = append(f.Constraints, Constraint{Kind: MinLength, Length: *fn.MinLength})
	}
	if fn.MaxLength != nil {
		f.Constraints = append(f.Constraints, Constraint{Kind: MaxLength, Length: *fn.MaxLength})
	}
	if fn.Minimum != nil {
		f.Constraints = append(f.Constraints, Constraint{Kind: MinValue, Bound: *fn.Minimum})
	}
	if fn.Maximum != nil {
		f.Constraints = append(f.Constraints, Constraint{Kind: MaxValue, Bound: *fn.Maximum})
	}
	return f, nil
}

// normalizeDefault converts yaml.v3's decoded forms into the ones
// checkDefault accepts, in particular map[any]any keys into strings.
func normalizeDefault(v any) any {
	switch m := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = normalizeDefault(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = normalizeDefault(val)
		}
		return out
	case []any:
		out := make([]any, len(m))
		for i, val := range m {
			out[i] = normalizeDefault(val)
		}
		return out
	default:
		return v
	}
}
