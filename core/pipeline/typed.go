package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/structohq/structo/core/report"
	"github.com/structohq/structo/core/schema"
)

// RunAs runs the pipeline and materialises the validated value into a T.
// The report is returned alongside in every case so callers keep access to
// the full diagnostics; the error mirrors the report's failure shape (the
// violation list itself when validation failed).
//
// Example:
//
//	type Task struct {
//	    Title string `json:"title" jsonschema:"minLength=1"`
//	    Done  bool   `json:"done" jsonschema:"default=false"`
//	}
//
//	task, rep, err := pipeline.RunAs[Task](p, responseText)
func RunAs[T any](p *Pipeline, raw string) (T, *report.Report, error) {
	var out T
	rep := p.Run(raw)
	if !rep.OK {
		if rep.Err != nil {
			return out, rep, rep.Err
		}
		return out, rep, rep.Violations
	}

	data, err := rep.Value.MarshalJSON()
	if err != nil {
		return out, rep, fmt.Errorf("structo: encoding validated value: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, rep, fmt.Errorf("structo: materialising %T: %w", out, err)
	}
	return out, rep, nil
}

// ExtractAs derives the schema descriptor from T, builds a pipeline and
// runs it against raw in one call. For repeated extractions of the same
// type, build the pipeline once with [New] and [schema.FromType] instead.
func ExtractAs[T any](raw string, opts ...Option) (T, *report.Report, error) {
	var out T
	spec, err := schema.FromType[T]()
	if err != nil {
		return out, nil, err
	}
	p, err := New(spec, opts...)
	if err != nil {
		return out, nil, err
	}
	return RunAs[T](p, raw)
}
