package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/structohq/structo/core/decode"
	"github.com/structohq/structo/core/extract"
	"github.com/structohq/structo/core/validate"
	"github.com/structohq/structo/internal/utils"
)

// ErrNoCandidateFound is carried by a failed Report when every extraction
// strategy came up empty: nothing in the input even resembled a JSON
// object.
var ErrNoCandidateFound = errors.New("structo: no JSON candidate found in response text")

// ErrAllCandidatesFailed is carried by a failed Report when candidates
// were found but none of them decoded, even after repair. The per
// candidate syntax errors are in [Report.Attempts].
var ErrAllCandidatesFailed = errors.New("structo: no extracted candidate decoded as JSON")

// maxCandidatePreview bounds how much of a candidate an Attempt records.
const maxCandidatePreview = 200

// Attempt records one candidate the pipeline tried to decode, for
// diagnostics. Offset is the syntax error position, or -1 when the
// candidate decoded (or the failure had no position).
type Attempt struct {
	Strategy  string
	Candidate string
	Repaired  bool
	Err       string
	Offset    int64
}

// NewAttempt builds an Attempt from a candidate and its decode outcome,
// truncating the candidate to a preview.
func NewAttempt(c extract.Candidate, repaired bool, err error) Attempt {
	a := Attempt{
		Strategy:  c.Strategy.String(),
		Candidate: utils.TruncateString(c.Text, maxCandidatePreview),
		Repaired:  repaired,
		Offset:    -1,
	}
	if err != nil {
		a.Err = err.Error()
		var syn *decode.SyntaxError
		if errors.As(err, &syn) {
			a.Offset = syn.Offset
		}
	}
	return a
}

// Report is the sole output of a pipeline run. Exactly one of three shapes
// holds: OK with Value set; not OK with Violations set (a candidate
// decoded but failed validation); or not OK with Err set (extraction or
// decoding never produced a tree). Attempts lists every candidate that was
// tried, in order, in all three shapes.
type Report struct {
	OK         bool
	Value      *validate.TypedValue
	Violations validate.Violations
	Attempts   []Attempt
	Err        error
}

// Success builds a successful report around a validated value.
func Success(value validate.TypedValue, attempts []Attempt) *Report {
	return &Report{OK: true, Value: &value, Attempts: attempts}
}

// Invalid builds a report for input that decoded but failed validation.
func Invalid(violations validate.Violations, attempts []Attempt) *Report {
	return &Report{Violations: violations, Attempts: attempts}
}

// Failed builds a report for input that never produced a value tree.
func Failed(err error, attempts []Attempt) *Report {
	return &Report{Err: err, Attempts: attempts}
}

// Summary renders the report as plain text suitable for embedding in a
// corrective follow-up prompt or an error display: one line per violation,
// or the extraction attempts and their failures.
func (r *Report) Summary() string {
	if r.OK {
		return "response is valid"
	}

	var b strings.Builder
	if len(r.Violations) > 0 {
		fmt.Fprintf(&b, "response failed validation with %d problem(s):\n", len(r.Violations))
		for _, v := range r.Violations {
			fmt.Fprintf(&b, "  - %s\n", v.Error())
		}
		return strings.TrimRight(b.String(), "\n")
	}

	fmt.Fprintf(&b, "%v\n", r.Err)
	if len(r.Attempts) == 0 {
		b.WriteString("  no extraction strategy produced a candidate")
		return b.String()
	}
	for _, a := range r.Attempts {
		label := a.Strategy
		if a.Repaired {
			label += "+repair"
		}
		fmt.Fprintf(&b, "  - [%s] %s: %s\n", label, a.Candidate, a.Err)
	}
	return strings.TrimRight(b.String(), "\n")
}

// String returns a one-line form of the report for logs.
func (r *Report) String() string {
	switch {
	case r.OK:
		return fmt.Sprintf("Report(ok, value=%s)", utils.TruncateString(utils.JSONToString(r.Value), maxCandidatePreview))
	case len(r.Violations) > 0:
		return fmt.Sprintf("Report(invalid, %d violation(s))", len(r.Violations))
	default:
		return fmt.Sprintf("Report(failed, %v)", r.Err)
	}
}
