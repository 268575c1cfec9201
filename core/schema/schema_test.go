package schema

import (
	"strings"
	"testing"
)

func TestObject_Valid(t *testing.T) {
	spec, err := Object(
		Field("title", String(), WithMinLength(1), WithMaxLength(100)),
		Field("priority", Enum("low", "medium", "high"), WithDefault("medium")),
		Field("done", Boolean(), WithDefault(false)),
		Field("estimated_hours", Float(), WithDefault(1.0), WithMinValue(0), WithMaxValue(100)),
		Field("due_date", Optional(String())),
	)
	if err != nil {
		t.Fatalf("Object() unexpected error: %v", err)
	}
	if spec.Kind != KindObject {
		t.Errorf("Object() kind = %v, want %v", spec.Kind, KindObject)
	}
	if len(spec.Fields) != 5 {
		t.Fatalf("Object() fields = %d, want 5", len(spec.Fields))
	}

	// Field order must follow declaration order.
	wantOrder := []string{"title", "priority", "done", "estimated_hours", "due_date"}
	for i, name := range wantOrder {
		if spec.Fields[i].Name != name {
			t.Errorf("field[%d] = %q, want %q", i, spec.Fields[i].Name, name)
		}
	}

	if spec.Fields[0].Required != true {
		t.Error("title should be required")
	}
	if spec.Fields[1].Required || spec.Fields[1].Default != "medium" {
		t.Errorf("priority should be optional with default %q, got required=%v default=%v",
			"medium", spec.Fields[1].Required, spec.Fields[1].Default)
	}
	if spec.Fields[4].Required {
		t.Error("optional-typed field should never be required")
	}
}

func TestObject_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		fields  []FieldSpec
		wantErr string
	}{
		{
			name:    "length constraint on boolean",
			fields:  []FieldSpec{Field("done", Boolean(), WithMinLength(1))},
			wantErr: "minLength=1 incompatible with boolean field",
		},
		{
			name:    "value constraint on string",
			fields:  []FieldSpec{Field("title", String(), WithMaxValue(10))},
			wantErr: "maximum=10 incompatible with string field",
		},
		{
			name:    "negative length bound",
			fields:  []FieldSpec{Field("title", String(), WithMinLength(-1))},
			wantErr: "is negative",
		},
		{
			name:    "default with wrong type",
			fields:  []FieldSpec{Field("count", Integer(), WithDefault("three"))},
			wantErr: "not an integer",
		},
		{
			name:    "fractional default on integer",
			fields:  []FieldSpec{Field("count", Integer(), WithDefault(2.5))},
			wantErr: "not an integer",
		},
		{
			name:    "enum default outside allowed set",
			fields:  []FieldSpec{Field("priority", Enum("low", "high"), WithDefault("urgent"))},
			wantErr: `default "urgent" not in allowed set`,
		},
		{
			name:    "empty enum",
			fields:  []FieldSpec{Field("priority", Enum())},
			wantErr: "enum has no allowed values",
		},
		{
			name:    "duplicate enum value",
			fields:  []FieldSpec{Field("priority", Enum("low", "low"))},
			wantErr: "duplicate enum value",
		},
		{
			name:    "duplicate field name",
			fields:  []FieldSpec{Field("a", String()), Field("a", Integer())},
			wantErr: `duplicate field "a"`,
		},
		{
			name:    "empty field name",
			fields:  []FieldSpec{Field("", String())},
			wantErr: "empty name",
		},
		{
			name: "nested field error carries path",
			fields: []FieldSpec{
				Field("steps", Sequence(TypeSpec{Kind: KindObject, Fields: []FieldSpec{
					Field("flag", Boolean(), WithMaxLength(3)),
				}})),
			},
			wantErr: `field "steps[].flag"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Object(tt.fields...)
			if err == nil {
				t.Fatalf("Object() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Object() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestMustObject_PanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustObject() should panic on configuration error")
		}
	}()
	MustObject(Field("done", Boolean(), WithMinLength(1)))
}

func TestCheck_HandAssembled(t *testing.T) {
	tests := []struct {
		name    string
		spec    TypeSpec
		wantErr bool
	}{
		{
			name:    "sequence without element",
			spec:    TypeSpec{Kind: KindSequence},
			wantErr: true,
		},
		{
			name:    "optional without inner",
			spec:    TypeSpec{Kind: KindOptional},
			wantErr: true,
		},
		{
			name:    "optional of optional",
			spec:    Optional(Optional(String())),
			wantErr: true,
		},
		{
			name:    "bare primitive is fine",
			spec:    Integer(),
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConstraint_String(t *testing.T) {
	tests := []struct {
		constraint Constraint
		want       string
	}{
		{Constraint{Kind: MinLength, Length: 1}, "minLength=1"},
		{Constraint{Kind: MaxLength, Length: 100}, "maxLength=100"},
		{Constraint{Kind: MinValue, Bound: 0}, "minimum=0"},
		{Constraint{Kind: MaxValue, Bound: 99.5}, "maximum=99.5"},
	}
	for _, tt := range tests {
		if got := tt.constraint.String(); got != tt.want {
			t.Errorf("Constraint.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestKind_String(t *testing.T) {
	kinds := map[Kind]string{
		KindString:   "string",
		KindInteger:  "integer",
		KindFloat:    "float",
		KindBoolean:  "boolean",
		KindEnum:     "enum",
		KindObject:   "object",
		KindSequence: "sequence",
		KindOptional: "optional",
	}
	for kind, want := range kinds {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}
