package validate

import (
	"fmt"
	"strings"
)

// ViolationKind tags the category of a schema non-conformance.
type ViolationKind string

const (
	MissingRequiredField ViolationKind = "missing_required_field"
	TypeMismatch         ViolationKind = "type_mismatch"
	UnknownEnumValue     ViolationKind = "unknown_enum_value"
	ConstraintViolated   ViolationKind = "constraint_violated"
)

// Violation is one schema non-conformance. Path addresses the offending
// field in dot/bracket notation ("steps[2].title"; empty for the root
// value). The kind-specific fields are populated only for their kind:
// Expected/Actual for TypeMismatch, Value/Allowed for UnknownEnumValue,
// Constraint for ConstraintViolated.
type Violation struct {
	Path    string
	Kind    ViolationKind
	Message string

	Expected string
	Actual   string

	Value   string
	Allowed []string

	Constraint string
}

// Error renders the violation as "<path>: <message>".
func (v Violation) Error() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// Violations is the ordered list of everything wrong with one input. It
// implements error so it can travel through ordinary error returns.
type Violations []Violation

func (vs Violations) Error() string {
	if len(vs) == 0 {
		return "structo: no violations"
	}
	msgs := make([]string, len(vs))
	for i, v := range vs {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("structo: %d validation violation(s): %s", len(vs), strings.Join(msgs, "; "))
}

// Has reports whether any violation targets the given field path.
func (vs Violations) Has(path string) bool {
	for _, v := range vs {
		if v.Path == path {
			return true
		}
	}
	return false
}

func missingField(path string) Violation {
	return Violation{
		Path:    path,
		Kind:    MissingRequiredField,
		Message: "required field is missing",
	}
}

func typeMismatch(path, expected, actual string) Violation {
	return Violation{
		Path:     path,
		Kind:     TypeMismatch,
		Message:  fmt.Sprintf("expected %s, got %s", expected, actual),
		Expected: expected,
		Actual:   actual,
	}
}

func unknownEnum(path, value string, allowed []string) Violation {
	return Violation{
		Path:    path,
		Kind:    UnknownEnumValue,
		Message: fmt.Sprintf("value %q is not one of: %s", value, strings.Join(allowed, ", ")),
		Value:   value,
		Allowed: allowed,
	}
}

func constraintViolated(path, constraint, detail string) Violation {
	return Violation{
		Path:       path,
		Kind:       ConstraintViolated,
		Message:    fmt.Sprintf("%s violates %s", detail, constraint),
		Constraint: constraint,
	}
}
