// Package report defines the single outward-facing result of a pipeline
// run. A [Report] carries the success flag, the typed value on success,
// the ordered violation list when validation failed, and, when extraction
// itself came up empty, which strategies were attempted and why each
// candidate failed to decode.
//
// The report is what a retry orchestrator consumes to build a corrective
// follow-up prompt; the pipeline itself never re-issues anything.
package report
