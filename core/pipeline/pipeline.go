package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/structohq/structo/core/decode"
	"github.com/structohq/structo/core/extract"
	"github.com/structohq/structo/core/report"
	"github.com/structohq/structo/core/schema"
	"github.com/structohq/structo/core/validate"
	"github.com/structohq/structo/internal/utils"
)

// Pipeline runs the linear extraction flow (extract, decode, validate,
// report) against a fixed schema descriptor. Build one per schema and
// reuse it; Run is safe for concurrent use.
type Pipeline struct {
	spec   schema.TypeSpec
	logger *slog.Logger
	repair bool
}

// New builds a Pipeline around spec. The descriptor is verified up front
// with [schema.Check], so a malformed hand-assembled schema is a
// construction error here rather than a surprise during validation.
func New(spec schema.TypeSpec, opts ...Option) (*Pipeline, error) {
	if err := schema.Check(spec); err != nil {
		return nil, err
	}
	cfg := config{
		logger: slog.New(slog.DiscardHandler),
		repair: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Pipeline{spec: spec, logger: cfg.logger, repair: cfg.repair}, nil
}

// Run extracts, decodes and validates raw, returning a Report in every
// case: success with a typed value, validation failure with the complete
// violation list, or extraction failure with per-candidate diagnostics.
// Candidates are tried in extraction order; the first one that decodes is
// the one that gets validated.
func (p *Pipeline) Run(raw string) *report.Report {
	candidates := extract.Candidates(raw)
	p.logger.Debug("extraction finished",
		slog.Int("input_len", len(raw)),
		slog.Int("candidates", len(candidates)))

	var attempts []report.Attempt
	for _, c := range candidates {
		value, err := decode.Decode(c.Text)
		attempts = append(attempts, report.NewAttempt(c, false, err))
		if err != nil {
			p.logger.Debug("candidate failed to decode",
				slog.String("strategy", c.Strategy.String()),
				slog.String("candidate", utils.TruncateString(c.Text, 120)),
				slog.String("error", err.Error()))
			continue
		}
		return p.finish(value, attempts)
	}

	if p.repair {
		for _, c := range repairTargets(raw, candidates) {
			value, err := repairAndDecode(c.Text)
			attempts = append(attempts, report.NewAttempt(c, true, err))
			if err != nil {
				p.logger.Debug("repaired candidate failed to decode",
					slog.String("strategy", c.Strategy.String()),
					slog.String("error", err.Error()))
				continue
			}
			p.logger.Debug("candidate decoded after repair",
				slog.String("strategy", c.Strategy.String()))
			return p.finish(value, attempts)
		}
	}

	if len(attempts) == 0 {
		p.logger.Debug("no candidate found")
		return report.Failed(report.ErrNoCandidateFound, nil)
	}
	return report.Failed(
		fmt.Errorf("%w (%d candidate(s) tried)", report.ErrAllCandidatesFailed, len(attempts)),
		attempts)
}

func (p *Pipeline) finish(value decode.Value, attempts []report.Attempt) *report.Report {
	typed, violations := validate.Validate(value, p.spec)
	if len(violations) > 0 {
		p.logger.Debug("validation failed", slog.Int("violations", len(violations)))
		return report.Invalid(violations, attempts)
	}
	p.logger.Debug("validation succeeded")
	return report.Success(typed, attempts)
}

// repairTargets selects what the repair stage works on: every original
// candidate, plus the trimmed raw text when it opens a brace that no
// strategy managed to close, the typical shape of output truncated by a
// token limit.
func repairTargets(raw string, candidates []extract.Candidate) []extract.Candidate {
	targets := make([]extract.Candidate, len(candidates))
	copy(targets, candidates)

	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		for _, c := range candidates {
			if c.Text == trimmed {
				return targets
			}
		}
		targets = append(targets, extract.Candidate{Text: trimmed, Strategy: extract.StrategyWhole})
	}
	return targets
}

// repairAndDecode runs automatic JSON repair over text and decodes the
// result. A repair that produces a bare scalar is rejected: jsonrepair
// happily turns prose into a quoted string, and surfacing that as a decode
// success would replace an honest syntax error with a nonsense type
// mismatch.
func repairAndDecode(text string) (decode.Value, error) {
	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return decode.Value{}, fmt.Errorf("structo: repair failed: %w", err)
	}
	value, err := decode.Decode(repaired)
	if err != nil {
		return decode.Value{}, err
	}
	if value.Kind != decode.KindMapping && value.Kind != decode.KindSequence {
		return decode.Value{}, fmt.Errorf("structo: repaired text is not a JSON object or array")
	}
	return value, nil
}
