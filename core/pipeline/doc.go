// Package pipeline assembles the full extraction flow: raw LLM text is
// scanned for candidate JSON substrings, candidates are decoded in order
// until one parses, the decoded tree is validated against the schema
// descriptor, and the outcome is wrapped in a [report.Report].
//
// A Pipeline is built once around an immutable schema and is safe for
// concurrent use; each [Pipeline.Run] is a pure function of its input with
// no I/O, no retries against the model, and no shared mutable state. When
// every candidate fails to decode, an optional last-resort stage runs each
// candidate through automatic JSON repair before giving up, which recovers
// the common case of output truncated mid-object by a token limit.
//
// For callers with a Go struct rather than a hand-built descriptor, the
// generic [ExtractAs] derives the schema from the type and materialises
// the validated value into it in one call.
package pipeline
