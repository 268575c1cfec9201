package pipeline

import (
	"errors"
	"testing"

	"github.com/structohq/structo/core/report"
	"github.com/structohq/structo/core/schema"
	"github.com/structohq/structo/core/validate"
)

type extractedTask struct {
	Title    string   `json:"title" jsonschema:"minLength=1"`
	Priority string   `json:"priority" jsonschema:"enum=low,enum=medium,enum=high,default=medium"`
	Done     bool     `json:"done" jsonschema:"default=false"`
	Tags     []string `json:"tags,omitempty"`
}

func TestRunAs(t *testing.T) {
	p := taskPipeline(t)

	t.Run("success", func(t *testing.T) {
		task, rep, err := RunAs[extractedTask](p, `{"title": "x", "done": true}`)
		if err != nil {
			t.Fatalf("RunAs() failed: %v", err)
		}
		if !rep.OK {
			t.Fatalf("report = %s", rep.Summary())
		}
		if task.Title != "x" || task.Priority != "medium" || !task.Done {
			t.Errorf("task = %+v", task)
		}
	})

	t.Run("violations become the error", func(t *testing.T) {
		_, rep, err := RunAs[extractedTask](p, `{"title": ""}`)
		if err == nil {
			t.Fatal("RunAs() succeeded on invalid input")
		}
		var violations validate.Violations
		if !errors.As(err, &violations) {
			t.Fatalf("err = %T %v, want validate.Violations", err, err)
		}
		if len(rep.Violations) != 1 {
			t.Errorf("report violations = %v", rep.Violations)
		}
	})

	t.Run("extraction failure becomes the error", func(t *testing.T) {
		_, rep, err := RunAs[extractedTask](p, "nothing here")
		if !errors.Is(err, report.ErrNoCandidateFound) {
			t.Fatalf("err = %v", err)
		}
		if rep == nil || rep.OK {
			t.Errorf("report = %+v", rep)
		}
	})
}

func TestExtractAs(t *testing.T) {
	raw := "Sure, here is your task:\n```json\n{\"title\": \"write docs\", \"priority\": \"high\", \"tags\": [\"docs\"]}\n```"
	task, rep, err := ExtractAs[extractedTask](raw)
	if err != nil {
		t.Fatalf("ExtractAs() failed: %v", err)
	}
	if !rep.OK {
		t.Fatalf("report = %s", rep.Summary())
	}
	if task.Title != "write docs" || task.Priority != "high" || task.Done {
		t.Errorf("task = %+v", task)
	}
	if len(task.Tags) != 1 || task.Tags[0] != "docs" {
		t.Errorf("tags = %v", task.Tags)
	}
}

func TestExtractAs_SchemaErrorsSurface(t *testing.T) {
	type bad struct {
		M map[string]int `json:"m"`
	}
	_, rep, err := ExtractAs[bad](`{"m": {}}`)
	if err == nil {
		t.Fatal("ExtractAs() accepted an unsupported field type")
	}
	if rep != nil {
		t.Errorf("report = %+v, want nil before the pipeline runs", rep)
	}
}

func TestExtractAs_MatchesHandBuiltSchema(t *testing.T) {
	spec, err := schema.FromType[extractedTask]()
	if err != nil {
		t.Fatalf("FromType() failed: %v", err)
	}
	p, err := New(spec)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	rep := p.Run(`{"title": "x"}`)
	if !rep.OK {
		t.Fatalf("Run() = %s", rep.Summary())
	}
	priority, _ := rep.Value.Field("priority")
	if priority.StringVal() != "medium" {
		t.Errorf("priority = %q, want default applied", priority.StringVal())
	}
}
