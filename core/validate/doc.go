// Package validate walks a decoded value tree against a schema descriptor
// and produces either a fully valid [TypedValue] or an ordered list of
// field-level [Violation] entries, never both and never a partially valid
// value.
//
// Validation is exhaustive: every field is checked in one pass, so a
// caller (typically an orchestrator building a corrective re-prompt) sees
// the complete set of problems at once instead of fixing one and
// rediscovering the next. The coercion policy is deliberately asymmetric:
// numbers and booleans coerce to strings, numeric-looking strings coerce
// to numbers, but nothing ever coerces to a boolean: an ambiguous "yes"
// must not silently become true.
package validate
